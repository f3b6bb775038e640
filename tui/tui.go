// ABOUTME: Terminal portal using the bubbletea framework
// ABOUTME: The model is the application state; Update is the transition function
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tessaly/vendordesk/forms"
	"github.com/tessaly/vendordesk/gateway"
	"github.com/tessaly/vendordesk/models"
	"github.com/tessaly/vendordesk/notify"
	"github.com/tessaly/vendordesk/search"
	"github.com/tessaly/vendordesk/session"
	"github.com/tessaly/vendordesk/store"
)

// Screen is the active portal screen.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenVendors
	ScreenProducts
	ScreenRepresentatives
	ScreenAddVendor
	ScreenAddProduct
	ScreenAddRepresentative
	ScreenSearch
	ScreenVendorDetails
)

// Model is the whole application state. Every transition flows through
// Update; gateway calls run as commands and come back as typed messages.
type Model struct {
	gw   gateway.Gateway
	sess session.Session
	feed *gateway.Feed
	log  zerolog.Logger

	width  int
	height int

	// Auth gate. Until a session is present only the auth screen
	// renders and no screen transitions happen.
	authed   bool
	identity *session.Identity

	// Global loading gate for session bootstrap and the initial
	// collection fetches.
	booting     bool
	bootPending int

	screen Screen
	cache  store.Cache

	// Auth form state.
	loginMode  bool
	authInputs []textinput.Model
	authFocus  int
	authBusy   bool

	// List screens.
	selectedRow int

	// Add/edit form state. One draft at a time; entering a list screen
	// discards it.
	draft        *forms.Draft
	formInputs   []textinput.Model
	formFocus    int
	vendorChoice int
	submitting   bool

	// Vendor details focus.
	focusVendor    *models.Vendor
	detailReps     []models.Representative
	detailProducts []models.Product
	detailLoading  bool
	detailErr      string

	// Search screen.
	searchKind    int
	searchFocus   int
	searchInput   textinput.Model
	productChoice int
	searchBusy    bool
	searched      bool
	results       search.Results

	banner notify.Banner
	modal  notify.Modal

	deleteBusy bool
}

// New builds the model. When a persisted session is present the auth
// gate opens immediately and Init starts the bootstrap fetches.
func New(gw gateway.Gateway, sess session.Session, feed *gateway.Feed, log zerolog.Logger) Model {
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 100
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword

	term := textinput.New()
	term.Placeholder = "Search term"
	term.CharLimit = 100

	m := Model{
		gw:          gw,
		sess:        sess,
		feed:        feed,
		log:         log,
		width:       80,
		height:      24,
		screen:      ScreenDashboard,
		loginMode:   true,
		authInputs:  []textinput.Model{email, password},
		searchInput: term,
	}

	if id := sess.Current(); id != nil {
		m.authed = true
		m.identity = id
		m.booting = true
		m.bootPending = 3
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.authed {
		cmds = append(cmds, m.fetchVendorsCmd(), m.fetchProductsCmd(), m.fetchRepresentativesCmd())
	}
	if m.feed != nil {
		cmds = append(cmds, listenFeedCmd(m.feed))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.booting {
			return m, nil
		}
		if m.modal.Open() {
			return m.handleModalKeys(msg)
		}
		if !m.authed {
			return m.handleAuthKeys(msg)
		}
		return m.handleScreenKeys(msg)

	case authDoneMsg:
		return m.handleAuthDone(msg)
	case signedOutMsg:
		return m.handleSignedOut(msg)

	case vendorsLoadedMsg:
		return m.handleVendorsLoaded(msg)
	case productsLoadedMsg:
		return m.handleProductsLoaded(msg)
	case representativesLoadedMsg:
		return m.handleRepresentativesLoaded(msg)

	case savedMsg:
		return m.handleSaved(msg)
	case deletedMsg:
		return m.handleDeleted(msg)
	case searchedMsg:
		return m.handleSearched(msg)
	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)

	case bannerExpiredMsg:
		m.banner = m.banner.Expire(msg.gen)
		return m, nil

	case feedChangedMsg:
		return m.handleFeedChanged(msg)
	}

	return m, nil
}

func (m Model) View() string {
	if m.booting {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			loadingStyle.Render("Loading vendor portal..."))
	}
	if !m.authed {
		return m.renderAuthView()
	}
	if m.modal.Open() {
		return m.renderModalView()
	}

	switch m.screen {
	case ScreenDashboard:
		return m.renderDashboardView()
	case ScreenVendors, ScreenProducts, ScreenRepresentatives:
		return m.renderListView()
	case ScreenAddVendor, ScreenAddProduct, ScreenAddRepresentative:
		return m.renderFormView()
	case ScreenSearch:
		return m.renderSearchView()
	case ScreenVendorDetails:
		return m.renderDetailView()
	}
	return ""
}

// navigate moves to a screen and applies the exit/entry clearing rules:
// list screens and the dashboard drop any draft and the detail focus;
// add screens start from a fresh blank draft. Edit entry points seed the
// draft themselves and then assign the screen directly.
func (m Model) navigate(screen Screen) Model {
	m.screen = screen
	m.selectedRow = 0

	switch screen {
	case ScreenDashboard, ScreenVendors, ScreenProducts, ScreenRepresentatives, ScreenSearch:
		m.clearDraft()
		m.focusVendor = nil
	case ScreenAddVendor:
		m.beginForm(forms.NewDraft(forms.EntityVendor))
	case ScreenAddProduct:
		m.beginForm(forms.NewDraft(forms.EntityProduct))
	case ScreenAddRepresentative:
		m.beginForm(forms.NewDraft(forms.EntityRepresentative))
	}
	return m
}

func (m *Model) clearDraft() {
	m.draft = nil
	m.formInputs = nil
	m.formFocus = 0
	m.vendorChoice = 0
}

// showBanner replaces the current banner and schedules its expiry.
func (m Model) showBanner(message string, severity notify.Severity) (Model, tea.Cmd) {
	m.banner = m.banner.Show(message, severity, time.Now())
	return m, bannerExpireCmd(m.banner.Gen)
}

// listScreenFor maps an entity type to its list screen.
func listScreenFor(entity forms.EntityType) Screen {
	switch entity {
	case forms.EntityVendor:
		return ScreenVendors
	case forms.EntityProduct:
		return ScreenProducts
	default:
		return ScreenRepresentatives
	}
}

// formScreenFor maps an entity type to its add/edit screen.
func formScreenFor(entity forms.EntityType) Screen {
	switch entity {
	case forms.EntityVendor:
		return ScreenAddVendor
	case forms.EntityProduct:
		return ScreenAddProduct
	default:
		return ScreenAddRepresentative
	}
}

// Styles.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	loadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	successBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("10")).
				Bold(true)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9")).
				Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

func (m Model) renderBanner() string {
	if !m.banner.Active() {
		return ""
	}
	if m.banner.Severity == notify.Success {
		return successBannerStyle.Render("✓ "+m.banner.Message) + "\n\n"
	}
	return errorBannerStyle.Render("✗ "+m.banner.Message) + "\n\n"
}
