package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lumen/ecs"
)

type EntityInfo struct {
	ID        ecs.EntityId
	Name      string
	Tag       string
	Active    bool
	Behaviors int
}

// EntityBrowser lists the entities of a scene in a sortable, filterable table.
type EntityBrowser struct {
	entities           []EntityInfo
	selected           ecs.EntityId
	filterText         string
	sortColumn         int
	sortAscending      bool
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		sortAscending:      true,
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Selected() ecs.EntityId { return eb.selected }

func (eb *EntityBrowser) Select(id ecs.EntityId) { eb.selected = id }

func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

// Refresh snapshots the scene's live entities. The table is rebuilt every
// frame since entities come and go between frames.
func (eb *EntityBrowser) Refresh(scene *ecs.Scene) {
	eb.entities = eb.entities[:0]
	for e := range scene.Entities() {
		eb.entities = append(eb.entities, EntityInfo{
			ID:        e.Id(),
			Name:      e.Name,
			Tag:       e.Tag,
			Active:    e.Active,
			Behaviors: e.Len(),
		})
	}
	eb.sortEntities()

	if !eb.selected.IsZero() {
		if _, ok := scene.Entity(eb.selected); !ok {
			eb.selected = 0
		}
	}
}

func (eb *EntityBrowser) Render(scene *ecs.Scene) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh(scene)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.SetFilter("")
	}

	filtered := eb.Filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Tag")
		imgui.TableSetupColumn("Behaviors")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filtered))

		for i := startIdx; i < endIdx; i++ {
			entity := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d:%d", entity.ID.Index(), entity.ID.Generation())
			if !entity.Active {
				label += " (inactive)"
			}
			if imgui.SelectableBoolV(label, eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Name)

			imgui.TableNextColumn()
			imgui.Text(entity.Tag)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.Behaviors))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.entities, func(i, j int) bool {
		a, b := eb.entities[i], eb.entities[j]
		var less bool

		switch eb.sortColumn {
		case 1:
			less = a.Name < b.Name
		case 2:
			less = a.Tag < b.Tag
		case 3:
			less = a.Behaviors < b.Behaviors
		default:
			less = a.ID.Index() < b.ID.Index()
		}

		if !eb.sortAscending {
			return !less
		}
		return less
	})
}

// Filtered returns the entities whose index, name or tag contains the
// filter text, case-insensitively.
func (eb *EntityBrowser) Filtered() []EntityInfo {
	if eb.filterText == "" {
		return eb.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.entities {
		idStr := fmt.Sprintf("%d", entity.ID.Index())
		if !strings.Contains(idStr, filterLower) &&
			!strings.Contains(strings.ToLower(entity.Name), filterLower) &&
			!strings.Contains(strings.ToLower(entity.Tag), filterLower) {
			continue
		}
		filtered = append(filtered, entity)
	}

	return filtered
}
