package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
	"github.com/yuk1-kondo/line2notion-receipts/internal/records"
)

type reviewState int

const (
	reviewStateBrowse reviewState = iota
	reviewStateEdit
)

// ReviewModel lists low-confidence classifications and lets a human
// assign the correct category; corrections are saved as source=manual.
type ReviewModel struct {
	CommonModel

	store     records.ReviewStore
	threshold float64
	limit     int

	state reviewState
	table table.Model
	items []*records.Item
	form  *huh.Form

	loading bool
	err     error
	status  string

	formCategory string
}

func NewReviewModel(store records.ReviewStore, threshold float64, limit int) ReviewModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Store", Width: 20},
		{Title: "Item", Width: 24},
		{Title: "Amount", Width: 8},
		{Title: "Category", Width: 24},
		{Title: "Conf", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ReviewModel{
		store:     store,
		threshold: threshold,
		limit:     limit,
		table:     t,
		loading:   true,
	}
}

type loadItemsMsg struct {
	items []*records.Item
	err   error
}

type itemSaveMsg struct {
	err error
}

func (m ReviewModel) loadItemsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		items, err := m.store.ListLowConfidence(ctx, m.threshold, m.limit)

		return loadItemsMsg{items: items, err: err}
	}
}

func (m ReviewModel) saveCmd(ref string, category receipt.Category) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return itemSaveMsg{err: m.store.UpdateItemCategory(ctx, ref, category)}
	}
}

func (m ReviewModel) Init() tea.Cmd {
	return m.loadItemsCmd()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadItemsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.items = msg.items
		m.refreshTable()

		return m, nil

	case itemSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Saved"
		}

		m.state = reviewStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadItemsCmd()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))

		return m, nil
	}

	switch m.state {
	case reviewStateBrowse:
		return m.updateBrowse(msg)
	case reviewStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ReviewModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadItemsCmd()
		case "enter", "e":
			return m.enterEditMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReviewModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return m, nil
	}

	item := m.items[idx]
	m.formCategory = string(item.Category)

	categories := receipt.Categories()
	options := make([]huh.Option[string], 0, len(categories))
	for _, cat := range categories {
		options = append(options, huh.NewOption(string(cat), string(cat)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title(item.Name).
				Description(FormatYen(item.Amount)).
				Options(options...).
				Value(&m.formCategory),
		),
	).WithWidth(48).WithShowHelp(false)

	m.state = reviewStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ReviewModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = reviewStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		m.state = reviewStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	m.status = "Saving..."

	return m, m.saveCmd(m.items[idx].Ref, receipt.Category(m.formCategory))
}

func (m ReviewModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading low-confidence items...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.items) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Nothing to review.\n\nr: refresh | q: quit")
	}

	header := fmt.Sprintf("Items below confidence %.2f — enter: reclassify | r: refresh | q: quit", m.threshold)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == reviewStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(52).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.JoinVertical(lipgloss.Left,
			content,
			lipgloss.NewStyle().Faint(true).Render(m.status),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ReviewModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))

	for _, item := range m.items {
		rows = append(rows, table.Row{
			FormatDate(item.PurchaseDate),
			item.StoreName,
			item.Name,
			FormatYen(item.Amount),
			string(item.Category),
			fmt.Sprintf("%.2f", item.Confidence),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}
