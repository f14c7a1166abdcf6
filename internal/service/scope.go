package service

import (
	"renolab/internal/domain"
)

// ResolveScope filters a tool's full collection down to the groups a share
// link exposes. Pure and total: every input produces a result, never an error.
//
// Mode "all" is the identity transform. Mode "selected" keeps only groups
// whose id is in the set — an empty set yields an empty payload, it never
// degrades to "all". Ids referencing groups deleted since the token was
// created are simply absent from the collection and contribute nothing.
func ResolveScope(scope domain.Scope, payload domain.ToolPayload) domain.ToolPayload {
	if scope.Mode != domain.ScopeModeSelected {
		return payload
	}

	selected := make(map[string]bool, len(scope.IDs))
	for _, id := range scope.IDs {
		selected[id] = true
	}

	filtered := domain.ToolPayload{
		ToolKey: payload.ToolKey,
		Groups:  []domain.ToolGroup{},
		Items:   []domain.ToolItem{},
	}

	for _, group := range payload.Groups {
		if selected[group.ID.String()] {
			filtered.Groups = append(filtered.Groups, group)
		}
	}
	for _, item := range payload.Items {
		if selected[item.GroupID.String()] {
			filtered.Items = append(filtered.Items, item)
		}
	}

	return filtered
}
