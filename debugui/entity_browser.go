package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/crossing/ecs"
	"github.com/plus3/crossing/game"
)

type EntityBrowser struct {
	selectedEntityId   ecs.EntityId
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{maxEntitiesPerPage: maxEntitiesPerPage}
}

// filterEntities keeps the entities whose kind contains text, ignoring case.
func filterEntities(entities []game.EntityState, text string) []game.EntityState {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return entities
	}
	filtered := make([]game.EntityState, 0, len(entities))
	for _, e := range entities {
		if strings.Contains(strings.ToLower(e.Kind.String()), text) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// pageBounds clamps page into range and returns the slice bounds it covers.
func pageBounds(total, perPage, page int) (start, end, clamped int) {
	pages := max((total+perPage-1)/perPage, 1)
	clamped = min(max(page, 0), pages-1)
	start = clamped * perPage
	end = min(start+perPage, total)
	return start, end, clamped
}

func (eb *EntityBrowser) Render(snap game.Snapshot) {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 320), imgui.CondOnce)
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Filter by kind...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	entities := filterEntities(snap.Entities, eb.filterText)
	start, end, page := pageBounds(len(entities), eb.maxEntitiesPerPage, eb.currentPage)
	eb.currentPage = page

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, 220), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Speed")
		imgui.TableSetupColumn("Lane")
		imgui.TableHeadersRow()

		for _, e := range entities[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == e.Id
			if imgui.SelectableBoolV(fmt.Sprintf("%d:%d", e.Id.Index(), e.Id.Generation()), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = e.Id
			}

			imgui.TableNextColumn()
			imgui.Text(e.Kind.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.0f, %.0f", e.Pos.X, e.Pos.Y))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%+.2f", e.Dir*e.Speed))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", e.Lane))
		}

		imgui.EndTable()
	}

	if len(entities) > eb.maxEntitiesPerPage {
		totalPages := (len(entities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(entities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(entities)))
	}

	imgui.End()
}
