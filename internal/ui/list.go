package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tidyx/internal/models"
)

var (
	_ list.Item = categoryItem{}
)

// categoryItem wraps [models.Category] to implement [list.Item].
type categoryItem struct {
	rank     int
	category models.Category
}

func (i categoryItem) FilterValue() string { return i.category.Name }
func (i categoryItem) Title() string       { return fmt.Sprintf("%d. %s", i.rank, i.category.Name) }
func (i categoryItem) Description() string {
	return strings.Join(i.category.Extensions, " ")
}

func newCategoryList(table models.Table) list.Model {
	items := make([]list.Item, len(table))
	for i, c := range table {
		items[i] = categoryItem{rank: i + 1, category: c}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Categories (first match wins)"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}
