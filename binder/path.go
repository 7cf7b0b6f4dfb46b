package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// Path binds fields tagged `path:"name"` using extractor, typically chi.URLParam.
// Fields tagged `path:"-"` or without a path tag are left alone.
//
//	type latestRequest struct {
//		SuiteID string `path:"suiteID"`
//		CorpID  string `path:"corpID"`
//	}
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv, err := structValue(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParsePath, err)
		}
		rt := rv.Type()

		for i := range rv.NumField() {
			field := rv.Field(i)
			sf := rt.Field(i)
			if !field.CanSet() {
				continue
			}
			name, ok := tagName(sf, "path")
			if !ok {
				continue
			}
			value := extractor(r, name)
			if value == "" {
				continue
			}
			if err := setFieldValue(field, sf.Type, value); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrFailedToParsePath, sf.Name, err)
			}
		}

		return nil
	}
}

func structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("target must be a non-nil pointer")
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("target must be a pointer to struct")
	}
	return rv, nil
}
