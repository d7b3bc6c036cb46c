package command

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
)

// Ошибки регистрации.
var (
	ErrNilHandler      = errors.New("command: nil handler")
	ErrEmptyName       = errors.New("command: empty handler name")
	ErrInvalidName     = errors.New("command: invalid handler name format (must be kebab-case)")
	ErrDuplicate       = errors.New("command: duplicate handler registration")
	ErrAliasIsSelfName = errors.New("command: alias equals handler name")
)

var (
	registry = make(map[string]Handler)
	mu       sync.RWMutex

	// Строгий kebab-case: без завершающего и двойного дефиса.
	commandNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
)

// Register добавляет обработчик под его Name().
func Register(h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	name := h.Name()
	if name == "" {
		return ErrEmptyName
	}
	if !commandNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, name)
	}

	mu.Lock()
	defer mu.Unlock()
	return put(name, h)
}

// RegisterWithAlias регистрирует h под основным именем и, если alias
// не пуст, DeprecatedBridge под alias. Alias может быть не kebab-case.
func RegisterWithAlias(h Handler, alias string) error {
	if h == nil {
		return ErrNilHandler
	}
	if alias == h.Name() {
		return fmt.Errorf("%w: %s", ErrAliasIsSelfName, alias)
	}
	if err := Register(h); err != nil {
		return err
	}
	if alias == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()
	return put(alias, &DeprecatedBridge{actual: h, deprecated: alias, newName: h.Name()})
}

// put вызывается под mu.
func put(name string, h Handler) error {
	if _, exists := registry[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	registry[name] = h
	return nil
}

// Get возвращает обработчик по имени или алиасу.
func Get(name string) (Handler, bool) {
	mu.RLock()
	defer mu.RUnlock()
	h, ok := registry[name]
	return h, ok
}

// All возвращает копию реестра.
func All() map[string]Handler {
	mu.RLock()
	defer mu.RUnlock()
	result := make(map[string]Handler, len(registry))
	for k, v := range registry {
		result[k] = v
	}
	return result
}

// Names возвращает отсортированные имена, включая алиасы.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info - команда и её deprecated-алиас.
type Info struct {
	Name            string
	Description     string
	DeprecatedAlias string
}

// ListAllWithAliases возвращает основные команды, отсортированные по имени.
// Алиасы не выводятся отдельными записями, а попадают в DeprecatedAlias.
func ListAllWithAliases() []Info {
	mu.RLock()
	defer mu.RUnlock()

	aliases := make(map[string]string)
	for _, h := range registry {
		if bridge, ok := h.(*DeprecatedBridge); ok {
			aliases[bridge.newName] = bridge.deprecated
		}
	}

	result := make([]Info, 0, len(registry)-len(aliases))
	for name, h := range registry {
		if _, isBridge := h.(*DeprecatedBridge); isBridge {
			continue
		}
		result = append(result, Info{
			Name:            name,
			Description:     h.Description(),
			DeprecatedAlias: aliases[name],
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// clearRegistry используется тестами.
func clearRegistry() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Handler)
}
