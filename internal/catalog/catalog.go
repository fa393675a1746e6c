// Package catalog tracks the set of platform applications the hub can hand
// a signed-in user off to. Definitions live as JSON files in a directory and
// are reloaded when the directory changes.
package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cdah-platform/access-hub/pkg/token"
)

// App is one platform application definition. BaseURL is where the handoff
// lands; Roles, when non-empty, restricts which account roles see the app.
type App struct {
	Name    string   `json:"-"`
	Display string   `json:"display"`
	BaseURL *url.URL `json:"-"`
	Roles   []string `json:"roles"`
}

func (a *App) UnmarshalJSON(data []byte) error {
	type alias App
	tmp := &struct {
		URL string `json:"url"`
		*alias
	}{
		alias: (*alias)(a),
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	base, err := url.Parse(tmp.URL)
	if err != nil {
		return err
	}
	if base.Scheme == "" || base.Host == "" {
		return fmt.Errorf("app url must be absolute: %q", tmp.URL)
	}
	a.BaseURL = base
	return nil
}

// visibleTo reports whether an account with the given role should see this
// app. An empty Roles list means visible to every approved account.
func (a *App) visibleTo(role string) bool {
	if len(a.Roles) == 0 {
		return true
	}
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Catalog holds the loaded app definitions. Reload swaps the whole set, so
// readers always see a consistent snapshot.
type Catalog struct {
	dir string

	mu   sync.RWMutex
	apps map[string]*App
}

func New(dir string) (*Catalog, error) {
	c := &Catalog{dir: dir}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads every definition file in the catalog directory. A file
// that fails to parse aborts the reload and leaves the previous set in
// place.
func (c *Catalog) Reload() error {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("couldn't read catalog directory '%s': %w", c.dir, err)
	}

	apps := make(map[string]*App)
	for _, file := range files {
		if !file.Type().IsRegular() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(file.Name(), ".json")
		app, err := loadApp(filepath.Join(c.dir, file.Name()))
		if err != nil {
			return fmt.Errorf("couldn't load app '%s': %w", name, err)
		}
		app.Name = name
		apps[name] = app
	}

	c.mu.Lock()
	c.apps = apps
	c.mu.Unlock()
	log.Printf("loaded %d apps from %s", len(apps), c.dir)
	return nil
}

// Get returns the named app definition.
func (c *Catalog) Get(name string) (*App, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if app, ok := c.apps[name]; ok {
		return app, nil
	}
	return nil, fmt.Errorf("app not found: %s", name)
}

// ListForRole returns the apps visible to the given role, ordered by name.
func (c *Catalog) ListForRole(role string) []*App {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var apps []*App
	for _, app := range c.apps {
		if app.visibleTo(role) {
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })
	return apps
}

// HandoffURL builds the URL that carries a session credential to the named
// app as the sso_token query parameter.
func (c *Catalog) HandoffURL(name string, raw string) (*url.URL, error) {
	app, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return token.AppendToLocation(app.BaseURL, raw), nil
}

func loadApp(path string) (*App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read app definition: %w", err)
	}

	app := &App{}
	if err := json.Unmarshal(data, app); err != nil {
		return nil, fmt.Errorf("couldn't parse '%s': %w", path, err)
	}
	return app, nil
}
