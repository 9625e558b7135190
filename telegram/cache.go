package telegram

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"github.com/amarnathcjd/tghelper"
	"github.com/amarnathcjd/tghelper/internal/utils"
)

type (
	// LocaleEntry is one localization model and the IETF code it serves.
	LocaleEntry[T any] struct {
		Code  string
		Model T
	}

	// LocaleProvider yields localization models for bulk loading.
	LocaleProvider[T any] interface {
		Locales() ([]LocaleEntry[T], error)
	}

	// LocaleCache holds the registered localization models. Models may be
	// added while updates are being dispatched; existing ones never change.
	LocaleCache[T any] struct {
		models     *utils.SyncMap[string, T]
		defaultKey string
	}
)

func NewLocaleCache[T any](defaultKey string) *LocaleCache[T] {
	return &LocaleCache[T]{
		models:     utils.NewSyncMap[string, T](),
		defaultKey: defaultKey,
	}
}

func (c *LocaleCache[T]) DefaultKey() string {
	return c.defaultKey
}

// Add registers model under code. Blank codes, nil models and codes that
// are already registered are rejected.
func (c *LocaleCache[T]) Add(code string, model T) error {
	if strings.TrimSpace(code) == "" {
		return tghelper.NewError(tghelper.ErrLanguageCodeInvalid, code)
	}
	if isNil(model) {
		return errors.Errorf("localization model for %q is nil", code)
	}
	if !c.models.Add(code, model) {
		return tghelper.NewError(tghelper.ErrDuplicateLocale, code)
	}
	return nil
}

// AddAll registers every model the provider yields, stopping at the first
// rejected entry.
func (c *LocaleCache[T]) AddAll(p LocaleProvider[T]) error {
	entries, err := p.Locales()
	if err != nil {
		return errors.Wrap(err, "loading localization models")
	}
	for _, e := range entries {
		if err := c.Add(e.Code, e.Model); err != nil {
			return err
		}
	}
	return nil
}

func (c *LocaleCache[T]) Get(code string) (T, bool) {
	return c.models.Get(code)
}

func (c *LocaleCache[T]) Has(code string) bool {
	return c.models.Has(code)
}

func (c *LocaleCache[T]) Codes() []string {
	return utils.SortedKeys(c.models)
}

func (c *LocaleCache[T]) Len() int {
	return c.models.Len()
}

// Check fails unless the default key resolves to a registered model.
func (c *LocaleCache[T]) Check() error {
	if strings.TrimSpace(c.defaultKey) == "" || !c.models.Has(c.defaultKey) {
		return tghelper.NewError(tghelper.ErrDefaultLocale, c.defaultKey)
	}
	return nil
}

// Lookup resolves code to a model, substituting the default key when code
// is blank or unregistered. It returns the code actually used.
func (c *LocaleCache[T]) Lookup(code string) (string, T, error) {
	if strings.TrimSpace(code) == "" || !c.models.Has(code) {
		code = c.defaultKey
	}
	model, ok := c.models.Get(code)
	if !ok {
		var zero T
		return code, zero, tghelper.NewError(tghelper.ErrLocaleNotFound, code)
	}
	return code, model, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Interface, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
