// Package tui is the interactive terminal frontend: run a scan, browse the
// ranked assets, and score the selected one in a side pane.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/browser"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/cascade"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/render"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/scorer"
)

type App struct {
	cascade *cascade.Controller
	scorer  *scorer.Engine
	query   string
	scope   string
	caller  string
	tier    string
	onScan  func(cascade.Outcome)

	assets  []asset.Asset
	scanned bool
	outTier string
	cursor  int
	scores  map[string]scorer.Score
	scoring map[string]bool

	width  int
	height int

	spinner  spinner.Model
	scanning bool
	err      error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cascade *cascade.Controller
	Scorer  *scorer.Engine
	Query   string
	Scope   string
	Caller  string
	Tier    string

	// OnScan is invoked off the UI loop after each completed scan, so the
	// caller can persist results without the dashboard knowing about storage.
	OnScan func(cascade.Outcome)
}

func NewApp(opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cascade: opts.Cascade,
		scorer:  opts.Scorer,
		query:   opts.Query,
		scope:   opts.Scope,
		caller:  opts.Caller,
		tier:    opts.Tier,
		onScan:  opts.OnScan,
		scores:  make(map[string]scorer.Score),
		scoring: make(map[string]bool),
		spinner: sp,
	}
}

// Run starts the program and blocks until the user quits.
func Run(opts RunOpts) error {
	_, err := tea.NewProgram(NewApp(opts), tea.WithAltScreen()).Run()
	return err
}

func (a *App) Init() tea.Cmd {
	a.scanning = true
	return tea.Batch(a.spinner.Tick, a.scanCmd())
}

func (a *App) scanCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		scope := a.scope
		if scope == "" {
			scope = "all"
		}
		out, err := a.cascade.Scan(ctx, a.query, scope, a.caller, a.tier)
		if err != nil {
			return scanErrMsg{err: err}
		}
		if a.onScan != nil {
			a.onScan(out)
		}
		return scanDoneMsg{outcome: out}
	}
}

func (a *App) scoreCmd(target asset.Asset) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		return scoreDoneMsg{assetID: target.ID, score: a.scorer.Score(ctx, target)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		if a.scanning || len(a.scoring) > 0 {
			return a, cmd
		}
		return a, nil

	case scanDoneMsg:
		a.scanning = false
		a.scanned = true
		a.assets = msg.outcome.Assets
		a.outTier = msg.outcome.Tier
		a.cursor = 0
		return a, nil

	case scanErrMsg:
		a.scanning = false
		a.err = msg.err
		return a, nil

	case scoreDoneMsg:
		delete(a.scoring, msg.assetID)
		a.scores[msg.assetID] = msg.score
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}

	case "down", "j":
		if a.cursor < len(a.assets)-1 {
			a.cursor++
		}

	case "enter", "s":
		if cur, ok := a.current(); ok && !a.scoring[cur.ID] {
			if _, done := a.scores[cur.ID]; !done {
				a.scoring[cur.ID] = true
				return a, tea.Batch(a.spinner.Tick, a.scoreCmd(cur))
			}
		}

	case "o":
		if cur, ok := a.current(); ok && cur.URL != "" {
			// Best effort; a browser failure is not worth surfacing here.
			_ = browser.Open(cur.URL)
		}

	case "r":
		if !a.scanning {
			a.scanning = true
			a.err = nil
			return a, tea.Batch(a.spinner.Tick, a.scanCmd())
		}
	}
	return a, nil
}

func (a *App) current() (asset.Asset, bool) {
	if a.cursor < 0 || a.cursor >= len(a.assets) {
		return asset.Asset{}, false
	}
	return a.assets[a.cursor], true
}

func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	header := headerStyle.Render("assethunter") + "  " +
		headerTierStyle.Render(fmt.Sprintf("query: %q", a.query))
	if a.scanned {
		header += "  " + headerTierStyle.Render("tier: "+a.outTier)
	}

	if a.err != nil {
		return header + "\n\n" + errStyle.Render(a.err.Error()) +
			"\n\n" + helpStyle.Render("r retry · q quit")
	}
	if a.scanning {
		return header + "\n\n " + a.spinner.View() + " scanning marketplaces..."
	}

	bodyHeight := a.height - 4
	listWidth := a.width / 2
	detailWidth := a.width - listWidth - 4

	list := listPaneActiveStyle.Width(listWidth).Height(bodyHeight).
		Render(renderList(a.assets, a.cursor, bodyHeight, listWidth))
	detail := detailPaneStyle.Width(detailWidth).Height(bodyHeight).
		Render(a.detailView(detailWidth))

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
	help := helpStyle.Render("j/k move · enter score · o open · r rescan · q quit")

	return strings.Join([]string{header, body, help}, "\n")
}

func (a *App) detailView(width int) string {
	cur, ok := a.current()
	if !ok {
		return "No asset selected"
	}

	if a.scoring[cur.ID] {
		return fmt.Sprintf("%s\n\n %s analyzing...", itemTitleStyle.Render(cur.Name), a.spinner.View())
	}
	if s, done := a.scores[cur.ID]; done {
		return render.ScoreCard(cur, s)
	}

	var b strings.Builder
	b.WriteString(itemTitleStyle.Render(cur.Name))
	b.WriteString("\n")
	b.WriteString(itemMetaStyle.Render(cur.Marketplace))
	b.WriteString("\n\n")
	b.WriteString(truncateStr(cur.Description, width*4))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Users    %s\n", compactCount(cur.UserCount))
	fmt.Fprintf(&b, "MRR est  $%s/mo\n", compactCount(cur.MRRPotential))
	b.WriteString("Status   " + statusStyle(string(cur.Status)).Render(string(cur.Status)))
	if cur.DetailsNote != "" {
		b.WriteString("\n\n" + itemMetaStyle.Render(cur.DetailsNote))
	}
	b.WriteString("\n\n" + helpStyle.Render("press enter to score"))
	return b.String()
}
