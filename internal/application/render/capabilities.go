package render

import (
	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

// Capabilities is the feature catalogue of the current synora release.
var Capabilities = []domain.Capability{
	{Group: "operations", Key: "install_upgrade_uninstall"},
	{Group: "operations", Key: "updatable_detection"},
	{Group: "security", Key: "download_source_checks"},
	{Group: "operations", Key: "health_cleanup_repair"},
	{Group: "operations", Key: "software_discovery_library"},
	{Group: "ai", Key: "ai_analyze"},
	{Group: "ai", Key: "ai_recommend"},
	{Group: "ai", Key: "ai_repair_plan"},
	{Group: "jobs", Key: "local_queue_worker"},
	{Group: "jobs", Key: "scheduler_basics"},
	{Group: "jobs", Key: "download_mvp"},
	{Group: "product", Key: "global_search_ui"},
	{Group: "product", Key: "repository_mvp"},
	{Group: "security", Key: "security_gate_audit"},
	{Group: "operations", Key: "registry_only_discovery"},
}

// RenderCapabilities groups the catalogue by section, in order of first
// appearance.
func RenderCapabilities(caps []domain.Capability, loc ports.LocaleProvider) domain.CapabilityView {
	view := domain.CapabilityView{
		Meta: loc.Format("prompts.capabilityMeta", map[string]any{"count": len(caps)}),
	}
	index := map[string]int{}
	badge := loc.Resolve("prompts.statusAvailable")
	for _, c := range caps {
		i, ok := index[c.Group]
		if !ok {
			i = len(view.Groups)
			index[c.Group] = i
			view.Groups = append(view.Groups, domain.CapabilityGroupView{
				Label: loc.Resolve("capabilityGroups." + c.Group),
			})
		}
		view.Groups[i].Items = append(view.Groups[i].Items, domain.CapabilityItemView{
			Text:  loc.Resolve("capabilities." + c.Key),
			Badge: badge,
		})
	}
	return view
}
