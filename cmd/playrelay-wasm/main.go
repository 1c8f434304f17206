//go:build js && wasm

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/playrelay/playrelay/internal/browser"
	"github.com/playrelay/playrelay/internal/loader"
	"github.com/playrelay/playrelay/internal/player"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	page := browser.NewPage()

	var boot player.Bootstrap
	if err := page.ReadConfig(&boot); err != nil {
		slog.Error("player bootstrap failed", "error", err)
		page.ShowError(player.MsgInit)
		select {}
	}
	if boot.Container == "" {
		boot.Container = player.DefaultContainer
	}
	if boot.HomePath == "" {
		boot.HomePath = "/"
	}

	doc := browser.NewDocument()
	prefs := browser.NewLocalStorage()

	session := player.NewSession(player.Config{
		Ref:        boot.Reference(),
		Container:  boot.Container,
		Candidates: boot.Candidates,
		Stylesheet: boot.Stylesheet,
		LicenseKey: boot.LicenseKey,
		Capability: player.NewCapability(browser.Global{}),
		Loader:     loader.New(doc, logger),
		Document:   doc,
		Keys:       browser.NewKeyboard(),
		Prefs:      prefs,
		Logger:     logger,
		OnChange: func(state player.State, err error) {
			switch state {
			case player.Loading:
				page.ShowLoading()
			case player.Ready:
				page.ShowReady()
			case player.Errored:
				page.ShowError(userMessage(err))
			}
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	page.OnUnload(func() {
		cancel()
		session.Dispose()
	})

	page.SetSelected("stretching-select", string(player.LoadStretching(prefs)))
	page.OnSelect("stretching-select", func(value string) {
		mode, err := player.ParseStretching(value)
		if err != nil {
			slog.Warn("ignoring stretching selection", "value", value)
			return
		}
		if err := player.SaveStretching(prefs, mode); err != nil {
			slog.Warn("failed to save stretching preference", "error", err)
		}
	})
	page.OnClick("retry-button", func() {
		if err := session.Retry(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("player retry ended with error", "error", err)
		}
	})
	page.OnClick("home-button", func() {
		cancel()
		session.Dispose()
		page.Navigate(boot.HomePath)
	})

	go func() {
		if err := session.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("player start ended with error", "error", err)
		}
	}()

	select {}
}

func userMessage(err error) string {
	var perr *player.Error
	if errors.As(err, &perr) && perr.Message != "" {
		return perr.Message
	}
	return player.MsgInit
}
