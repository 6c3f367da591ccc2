package catalog

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Standard bundle keys.
const (
	KeyGamingComputer  = "gaming_computer"
	KeyOfficeWorkspace = "office_workspace"
	KeyCasualOutfit    = "casual_outfit"
)

// Entry pairs a bundle with the key it is published under.
type Entry struct {
	Key    string
	Bundle *Bundle
}

// Manager builds the standard bundles and remembers the last one built for
// each key. It is safe for concurrent use.
//
// Every builder call returns a freshly constructed bundle, so callers may
// mutate the result without affecting other requests.
type Manager struct {
	mu    sync.RWMutex
	cache map[string]*Bundle
}

// NewManager creates a manager with an empty cache.
func NewManager() *Manager {
	return &Manager{cache: make(map[string]*Bundle)}
}

type leafDef struct {
	id          int64
	name        string
	price       string
	description string
}

type bundleDef struct {
	name        string
	description string
	leaves      []leafDef
}

var standardBundles = map[string]bundleDef{
	KeyGamingComputer: {
		name:        "Gaming Computer Bundle",
		description: "Complete gaming setup",
		leaves: []leafDef{
			{1, "Gaming PC", "999.99", "High-performance gaming computer"},
			{2, "27-inch Monitor", "299.99", "4K gaming monitor"},
			{3, "Mechanical Keyboard", "89.99", "RGB mechanical keyboard"},
			{4, "Gaming Mouse", "49.99", "Precision gaming mouse"},
		},
	},
	KeyOfficeWorkspace: {
		name:        "Office Workspace Bundle",
		description: "Complete office setup",
		leaves: []leafDef{
			{5, "Office Desk", "199.99", "Ergonomic office desk"},
			{6, "Office Chair", "149.99", "Comfortable office chair"},
			{7, "Desk Lamp", "29.99", "LED desk lamp"},
		},
	},
	KeyCasualOutfit: {
		name:        "Casual Outfit Bundle",
		description: "Complete casual outfit",
		leaves: []leafDef{
			{8, "T-Shirt", "19.99", "Cotton t-shirt"},
			{9, "Jeans", "39.99", "Classic jeans"},
			{10, "Sneakers", "59.99", "Comfortable sneakers"},
		},
	},
}

var standardOrder = []string{KeyGamingComputer, KeyOfficeWorkspace, KeyCasualOutfit}

// GamingComputer builds the gaming computer bundle.
func (m *Manager) GamingComputer() *Bundle { return m.build(KeyGamingComputer) }

// OfficeWorkspace builds the office workspace bundle.
func (m *Manager) OfficeWorkspace() *Bundle { return m.build(KeyOfficeWorkspace) }

// CasualOutfit builds the casual outfit bundle.
func (m *Manager) CasualOutfit() *Bundle { return m.build(KeyCasualOutfit) }

// Standard builds every standard bundle in listing order.
func (m *Manager) Standard() []Entry {
	out := make([]Entry, 0, len(standardOrder))
	for _, key := range standardOrder {
		out = append(out, Entry{Key: key, Bundle: m.build(key)})
	}
	return out
}

// Bundle returns the bundle last built under key.
func (m *Manager) Bundle(key string) (*Bundle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.cache[key]
	return b, ok
}

func (m *Manager) build(key string) *Bundle {
	def := standardBundles[key]
	b := NewBundle(def.name, def.description)
	for _, l := range def.leaves {
		b.Add(NewLeaf(l.id, l.name, decimal.RequireFromString(l.price), l.description))
	}

	m.mu.Lock()
	m.cache[key] = b
	m.mu.Unlock()
	return b
}
