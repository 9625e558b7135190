package locales

import (
	"reflect"
	"strings"

	"github.com/fatih/structtag"
	"github.com/pkg/errors"
)

// MissingKeysError lists required localization keys that are blank.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return "missing localization keys: " + strings.Join(e.Keys, ", ")
}

// Validate checks the string fields of a struct model tagged
//
//	`locale:"greeting,required"`
//
// and fails with a *MissingKeysError naming every required field that is
// blank. Nested structs are checked with dotted names. Models that are not
// structs, such as Strings, always pass.
func Validate(model any) error {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return errors.New("localization model is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var missing []string
	if err := walk(v, "", &missing); err != nil {
		return err
	}
	if len(missing) > 0 {
		return &MissingKeysError{Keys: missing}
	}
	return nil
}

func walk(v reflect.Value, prefix string, missing *[]string) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tags, err := structtag.Parse(string(field.Tag))
		if err != nil {
			return errors.Wrapf(err, "field %s", field.Name)
		}

		name := field.Name
		required := false
		if tag, err := tags.Get("locale"); err == nil {
			if tag.Name == "-" {
				continue
			}
			if tag.Name != "" {
				name = tag.Name
			}
			required = tag.HasOption("required")
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Ptr && !fv.IsNil() {
			fv = fv.Elem()
		}
		switch fv.Kind() {
		case reflect.Struct:
			if err := walk(fv, name, missing); err != nil {
				return err
			}
		case reflect.String:
			if required && strings.TrimSpace(fv.String()) == "" {
				*missing = append(*missing, name)
			}
		case reflect.Ptr:
			if required {
				*missing = append(*missing, name)
			}
		}
	}
	return nil
}
