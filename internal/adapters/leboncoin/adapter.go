package leboncoin

import (
	"math/rand"
	"os"
	"os/exec"
	"time"

	"apartment-search-service/internal/constants"
)

// LeBonCoinAdapter достает объявления со страниц, собираемых скриптами:
// без headless-браузера выдача пуста. Каждый прогон владеет собственной
// браузерной сессией, которая гарантированно закрывается на любом выходе.
type LeBonCoinAdapter struct {
	baseURL  string
	execPath string
}

func NewLeBonCoinAdapter(baseURL string) *LeBonCoinAdapter {
	return &LeBonCoinAdapter{
		baseURL:  baseURL,
		execPath: findChromeBinary(),
	}
}

func (a *LeBonCoinAdapter) Name() string {
	return constants.SourceLeBonCoin
}

// randomDelay - случайная пауза из настроенного диапазона перед
// каждым взаимодействием со страницей. Политика адаптера, не общая.
func randomDelay() time.Duration {
	spread := constants.ScrapeDelayMax - constants.ScrapeDelayMin
	return constants.ScrapeDelayMin + time.Duration(rand.Int63n(int64(spread)))
}

// findChromeBinary ищет исполняемый файл Chrome/Chromium
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
