package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"
)

// ApplyDefaults preenche os campos com o valor da tag envDefault.
func ApplyDefaults(target interface{}) error {
	return walkEnv(target, func(env, def string) (string, bool) {
		return def, def != ""
	})
}

// ApplyEnv sobrescreve os campos cuja variável de ambiente (tag env) está
// definida e não vazia.
func ApplyEnv(target interface{}) error {
	return walkEnv(target, func(env, def string) (string, bool) {
		if env == "" {
			return "", false
		}
		v := os.Getenv(env)
		return v, v != ""
	})
}

type lookupFunc func(env, def string) (string, bool)

func walkEnv(target interface{}, lookup lookupFunc) error {
	val := reflect.ValueOf(target)
	if !val.IsValid() {
		return &InvalidTargetError{}
	}
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return &InvalidTargetError{Value: val.Type()}
	}
	return walkStruct(val.Elem(), lookup)
}

func walkStruct(val reflect.Value, lookup lookupFunc) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := walkStruct(field, lookup); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		defaultTag := fieldType.Tag.Get("envDefault")
		if envTag == "" && defaultTag == "" {
			continue
		}

		raw, ok := lookup(envTag, defaultTag)
		if !ok {
			continue
		}

		if err := setFieldValue(field, raw); err != nil {
			return &FieldError{
				FieldName: fieldType.Name,
				EnvVar:    envTag,
				Value:     raw,
				Err:       err,
			}
		}
	}

	return nil
}

func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(intValue)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uintValue, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(uintValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return err
		}
		field.SetBool(boolValue)

	default:
		return &UnsupportedTypeError{Type: field.Type()}
	}

	return nil
}
