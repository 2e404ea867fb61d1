package services

import (
	"strings"

	"github.com/chmouel/lazyuntrack/internal/models"
)

// Command preview templates. {root} and {name} expand to the repository's
// canonical root and display name, {file} to the repo-relative file path.
const (
	DefaultHeaderTemplate  = "# repository: {root}"
	DefaultCommandTemplate = "git rm --cached {file}"
)

// SelectionGroup holds the selected files of one repository, in selection
// walk order.
type SelectionGroup struct {
	Repo  *models.Repository
	Files []string // repo-relative slash paths
}

// CollectChecked walks the tree depth-first and groups the selected files by
// repository. Repositories appear in the order the walk first meets them and
// files keep their walk order inside each group. The tree is not modified;
// collecting twice yields the same result.
func CollectChecked(tree *PathTree) []SelectionGroup {
	if tree == nil {
		return nil
	}

	var groups []SelectionGroup
	index := make(map[*models.Repository]int)

	tree.Walk(func(n *PathNode) {
		if n.File == nil || !n.Checked {
			return
		}
		repo := n.File.Repo
		i, ok := index[repo]
		if !ok {
			i = len(groups)
			index[repo] = i
			groups = append(groups, SelectionGroup{Repo: repo})
		}
		groups[i].Files = append(groups[i].Files, n.File.RelPath)
	})
	return groups
}

// RenderCommands builds the command preview for the given groups: one header
// per repository, one command per file, and a blank line closing each block.
// Empty input renders to an empty string. Blank templates fall back to the
// defaults.
func RenderCommands(groups []SelectionGroup, headerTemplate, commandTemplate string) string {
	if len(groups) == 0 {
		return ""
	}
	if strings.TrimSpace(headerTemplate) == "" {
		headerTemplate = DefaultHeaderTemplate
	}
	if strings.TrimSpace(commandTemplate) == "" {
		commandTemplate = DefaultCommandTemplate
	}

	var lines []string
	for _, group := range groups {
		lines = append(lines, expandRepo(headerTemplate, group.Repo))
		for _, file := range group.Files {
			command := expandRepo(commandTemplate, group.Repo)
			lines = append(lines, strings.ReplaceAll(command, "{file}", file))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func expandRepo(template string, repo *models.Repository) string {
	if repo == nil {
		return template
	}
	out := strings.ReplaceAll(template, "{root}", repo.Root)
	return strings.ReplaceAll(out, "{name}", repo.Name)
}
