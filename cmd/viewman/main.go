package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shauncurtis/viewman/internal/config"
	"github.com/shauncurtis/viewman/internal/ui/common"
	"github.com/shauncurtis/viewman/internal/ui/controller"
	"github.com/shauncurtis/viewman/internal/ui/layouts"
	"github.com/shauncurtis/viewman/internal/ui/modal"
	"github.com/shauncurtis/viewman/internal/ui/navlink"
	"github.com/shauncurtis/viewman/internal/ui/registry"
	"github.com/shauncurtis/viewman/internal/ui/switcher"
	"github.com/shauncurtis/viewman/internal/ui/views"
	"github.com/shauncurtis/viewman/internal/ui/viewstate"
)

func main() {
	var (
		link  = flag.String("link", "", "startup deep link, e.g. '?Class=weather&Param-ID=2'")
		debug = flag.Bool("debug", false, "write debug logs to ./debug.log")
	)
	flag.Parse()

	if *debug {
		f, err := tea.LogToFile("debug.log", "viewman")
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not open debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	common.DefaultPalette.Update(config.Current.Colors)

	shell := buildShell(*link)
	p := tea.NewProgram(shell, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "viewman: %v\n", err)
		os.Exit(1)
	}
}

func buildShell(startupLink string) *controller.Shell {
	reg := registry.New()

	// registered factories may close over the controller; it exists before
	// the first factory can run
	var ctrl *controller.Controller

	reg.Register("home", func(state *viewstate.ViewState) (common.View, error) {
		return views.NewHome(state), nil
	})
	reg.Register("weather", func(state *viewstate.ViewState) (common.View, error) {
		return views.NewWeather(state), nil
	})
	reg.Register("editor", func(state *viewstate.ViewState) (common.View, error) {
		return views.NewEditor(state, ctrl, ctrl), nil
	})

	layoutSet := layouts.NewSet(layouts.Plain{})

	ctrl = controller.New(reg, layoutSet,
		controller.WithDefaultView(config.Current.UI.DefaultView),
		controller.WithDefaultLayout(config.Current.UI.DefaultLayout),
	)

	rail := navlink.New(ctrl,
		navlink.Link{
			Label:   "Home",
			Target:  mustResolve(reg, "home"),
			Binding: key.NewBinding(key.WithKeys("g")),
		},
		navlink.Link{
			Label:      "Weather",
			Target:     mustResolve(reg, "weather"),
			Parameters: map[string]any{"ID": 2, "City": "Bergen"},
			Binding:    key.NewBinding(key.WithKeys("w")),
		},
		navlink.Link{
			Label:   "Editor",
			Target:  mustResolve(reg, "editor"),
			Binding: key.NewBinding(key.WithKeys("e")),
		},
	)
	layoutSet.Add(layouts.NewMain(config.Current.UI.Title,
		layouts.WithSidebar(rail.View),
		layouts.WithStatus(statusLine(ctrl)),
	))

	return controller.NewShell(ctrl,
		controller.WithStartupLink(startupLink),
		controller.WithFrameInterval(time.Duration(config.Current.UI.FrameIntervalMs)*time.Millisecond),
		controller.WithGlobalKeys(globalKeys(ctrl, reg, rail)),
	)
}

func mustResolve(reg *registry.Registry, name string) viewstate.Identity {
	entry, ok := reg.Resolve(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "viewman: view %q not registered\n", name)
		os.Exit(1)
	}
	return entry
}

func statusLine(ctrl *controller.Controller) func(width int) string {
	dimmed := common.DefaultPalette.Get("dimmed")
	locked := common.DefaultPalette.Get("status locked")
	return func(width int) string {
		name := "-"
		if state := ctrl.CurrentView(); state != nil {
			name = state.Identity().Name()
		}
		line := " " + name + "  ·  p palette · b back · q quit"
		if ctrl.IsLocked() {
			return lipgloss.NewStyle().MaxWidth(width).Render(
				dimmed.Render(line) + "  " + locked.Render("LOCKED"),
			)
		}
		return dimmed.MaxWidth(width).Render(line)
	}
}

// globalKeys handles application chrome keys and the navigation rail. Plain
// letters stay global only while no modal is up and the active view is not
// capturing input, so typing in the editor does not quit the program.
func globalKeys(ctrl *controller.Controller, reg *registry.Registry, rail *navlink.Model) func(msg tea.KeyMsg) tea.Cmd {
	return func(msg tea.KeyMsg) tea.Cmd {
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}

		if host, ok := ctrl.ModalHost(); ok && host.Active() {
			return nil
		}
		if view, ok := ctrl.ActiveView().(common.Focusable); ok && view.IsFocused() {
			return nil
		}

		switch msg.String() {
		case "q":
			return tea.Quit
		case "b":
			return controller.Back()
		case "p":
			cmd, err := ctrl.ShowModalView(switcher.New(reg), modal.WithTitle("Switch view"))
			if err != nil {
				return nil
			}
			return cmd
		}
		return rail.Update(msg)
	}
}
