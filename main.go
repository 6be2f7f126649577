package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"neonshell/bridge"
	"neonshell/config"
	"neonshell/data"
	"neonshell/homepage"
	server "neonshell/http"
	"neonshell/logger"
	"neonshell/navigation"
	"neonshell/services"
	"neonshell/tui"
)

var (
	envFile      string
	serve        bool
	port         int
	engineName   string
	homeOut      string
	openHome     bool
	historyLimit int
)

func init() {
	flag.StringVar(&envFile, "env", ".env", "Env file to read before the environment")
	flag.BoolVar(&serve, "serve", false, "Run the companion server that engine hosts attach to")
	flag.IntVar(&port, "port", 0, "Port to listen on (overrides NEONSHELL_SERVER_PORT)")
	flag.StringVar(&engineName, "engine", "", "Search engine for the home page and address bar")
	flag.StringVar(
		&homeOut,
		"home",
		"",
		"Write the rendered home page to this file and exit",
	)
	flag.BoolVar(&openHome, "open", false, "Open the file written by -home in the system browser")
	flag.IntVar(&historyLimit, "history", 0, "Number of history rows the library view loads")
}

func main() {
	flag.Parse()
	os.Exit(run())
}

// run returns the exit code so deferred cleanup happens before main exits.
func run() int {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fail("Could not load config", err)
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if engineName != "" {
		cfg.Browser.SearchEngine = engineName
	}

	logFile := cfg.LogFile
	if logFile == "" {
		if dir, err := data.DataDir(); err == nil && os.MkdirAll(dir, 0o755) == nil {
			logFile = filepath.Join(dir, "neonshell.log")
		}
	}
	if logFile != "" {
		if err := logger.Init(logFile); err != nil {
			logger.Screen(fmt.Sprintf("Logging disabled: %v\n", err), logger.WarnColor)
		}
		defer logger.Close()
	}

	store, err := data.Open(cfg.Storage.ConnectionString, cfg.Storage.DataDir)
	if err != nil {
		return fail("Failed to open the history database", err)
	}
	defer store.Close()

	engine, err := navigation.EngineByName(cfg.Browser.SearchEngine)
	if err != nil {
		logger.Screen(fmt.Sprintf("%v, using %s\n", err, navigation.DefaultEngine.Name), logger.WarnColor)
		engine = navigation.DefaultEngine
	}

	opts := bridge.Options{
		Store:          store,
		Engine:         engine,
		Logo:           loadImage("logo", cfg.Browser.LogoPath),
		Background:     loadImage("background", cfg.Browser.BackgroundImage),
		BackgroundPath: cfg.Browser.BackgroundImage,
		Clipboard:      services.CopyText,
	}

	switch {
	case serve:
		if err := server.Run(cfg.Address(), opts); err != nil {
			return fail("Server stopped", err)
		}
	case homeOut != "":
		if err := writeHomePage(homeOut, opts); err != nil {
			return fail("Could not write the home page", err)
		}
	default:
		if err := tui.Run(tui.TUIConfig{Repository: store, HistoryLimit: historyLimit}); err != nil {
			return fail("TUI error", err)
		}
	}
	return 0
}

// loadImage returns nil when path is unset or unreadable; the home page
// then falls back to its built-in mark and plain backdrop.
func loadImage(what string, path string) *homepage.Image {
	if path == "" {
		return nil
	}
	img, err := homepage.LoadImage(path)
	if err != nil {
		logger.Screen(fmt.Sprintf("Ignoring %s image %s: %v\n", what, path, err), logger.WarnColor)
		logger.Debug.Printf("loading %s image %s: %v", what, path, err)
		return nil
	}
	return img
}

func writeHomePage(path string, opts bridge.Options) error {
	favorites, err := opts.Store.ListFavorites()
	if err != nil {
		return err
	}
	document, err := homepage.Render(homepage.Page{
		Favorites:  favorites,
		Background: opts.Background,
		Logo:       opts.Logo,
		Engines:    navigation.Engines(),
		Selected:   opts.Engine.Name,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		return err
	}
	logger.Screen(fmt.Sprintf("Home page written to %s\n", path), logger.InfoColor)

	if !openHome {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return services.OpenExternal("file://" + filepath.ToSlash(abs))
}

// fail reports err and returns the exit code for it.
func fail(what string, err error) int {
	logger.Screen(fmt.Sprintf("%s: %v\n", what, err), logger.ErrorColor)
	logger.Debug.Printf("%s: %v", what, err)
	return 1
}
