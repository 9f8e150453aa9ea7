package reporter

import (
	"fmt"
	"sort"
	"sync"
)

// Entry - зарегистрированный отчёт.
type Entry struct {
	Name     string
	Title    string
	Declarer Declarer
}

// Registry хранит отчёты по имени. Чтение безопасно из нескольких горутин.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register проверяет описание через New и добавляет отчёт. Повторное имя - ошибка.
func (r *Registry) Register(name, title string, d Declarer) error {
	if name == "" {
		return fmt.Errorf("пустое имя отчёта")
	}
	if _, err := New(d); err != nil {
		return fmt.Errorf("отчёт %q: %w", name, err)
	}
	if title == "" {
		title = DefaultLabel(name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("отчёт %q уже зарегистрирован", name)
	}
	r.entries[name] = Entry{Name: name, Title: title, Declarer: d}
	return nil
}

func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownReport, name)
	}
	return e, nil
}

// Build создаёт отчёт с нужным набором видимых полей.
func (r *Registry) Build(name string, visible ...string) (*Reporter, error) {
	e, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return New(e.Declarer, visible...)
}

func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
