package form

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
)

// File is an upload part. Data is held in memory so a request can be replayed.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileFromPath reads a file from disk into an upload part.
func FileFromPath(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Wrap(err, "[FileFromPath] read")
	}
	return File{Name: filepath.Base(path), Data: data}, nil
}

// Field is one flattened multipart entry. Exactly one of Value or File is used.
type Field struct {
	Key   string
	Value string
	File  *File
}

var (
	fileType = reflect.TypeOf(File{})
	timeType = reflect.TypeOf(time.Time{})
)

// Flatten turns a map or struct into bracket-keyed form fields.
// Nested objects become parent[key], list items become key[index] and nil
// values are skipped. Map keys are emitted in sorted order, struct fields in
// declaration order.
func Flatten(v any) ([]Field, error) {
	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return nil, nil
	}
	if rv.Kind() != reflect.Map && rv.Kind() != reflect.Struct {
		return nil, errors.Wrapf(perrors.ErrInvalidPayload, "[Flatten] expected map or struct, got %s", rv.Kind())
	}
	var fields []Field
	if err := flattenObject("", rv, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Encode renders v as a multipart/form-data body.
func Encode(v any) ([]byte, string, error) {
	fields, err := Flatten(v)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if f.File == nil {
			if err := w.WriteField(f.Key, f.Value); err != nil {
				return nil, "", errors.Wrap(err, "[Encode] write field")
			}
			continue
		}
		contentType := f.File.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(f.Key), escapeQuotes(f.File.Name)))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", errors.Wrap(err, "[Encode] create file part")
		}
		if _, err := part.Write(f.File.Data); err != nil {
			return nil, "", errors.Wrap(err, "[Encode] write file part")
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "[Encode] close writer")
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func flattenObject(prefix string, rv reflect.Value, out *[]Field) error {
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return errors.Wrapf(perrors.ErrInvalidPayload, "[Flatten] map keys must be strings at %q", prefix)
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := flattenValue(joinKey(prefix, k), rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())), out); err != nil {
				return err
			}
		}
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			name, omitEmpty, skip := fieldName(sf)
			if skip {
				continue
			}
			fv := rv.Field(i)
			if omitEmpty && fv.IsZero() {
				continue
			}
			if sf.Anonymous && name == sf.Name {
				if inner, ok := indirect(fv); ok && inner.Kind() == reflect.Struct {
					if err := flattenObject(prefix, inner, out); err != nil {
						return err
					}
					continue
				}
			}
			if err := flattenValue(joinKey(prefix, name), fv, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func flattenValue(key string, rv reflect.Value, out *[]Field) error {
	rv, ok := indirect(rv)
	if !ok {
		return nil
	}

	switch rv.Type() {
	case fileType:
		f := rv.Interface().(File)
		*out = append(*out, Field{Key: key, File: &f})
		return nil
	case timeType:
		*out = append(*out, Field{Key: key, Value: rv.Interface().(time.Time).Format(time.RFC3339)})
		return nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			*out = append(*out, Field{Key: key, Value: string(rv.Bytes())})
			return nil
		}
		for i := 0; i < rv.Len(); i++ {
			if err := flattenValue(fmt.Sprintf("%s[%d]", key, i), rv.Index(i), out); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map, reflect.Struct:
		return flattenObject(key, rv, out)
	}

	s, err := primitiveString(rv)
	if err != nil {
		return errors.Wrapf(err, "[Flatten] field %q", key)
	}
	*out = append(*out, Field{Key: key, Value: s})
	return nil
}

func primitiveString(rv reflect.Value) (string, error) {
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return s.String(), nil
	}
	return "", errors.Wrapf(perrors.ErrInvalidPayload, "unsupported kind %s", rv.Kind())
}

// indirect follows pointers and interfaces, reporting false for nil.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for {
		if !rv.IsValid() {
			return rv, false
		}
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return rv, false
			}
			rv = rv.Elem()
		case reflect.Map, reflect.Slice:
			if rv.IsNil() {
				return rv, false
			}
			return rv, true
		default:
			return rv, true
		}
	}
}

func fieldName(sf reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag := sf.Tag.Get("form")
	if tag == "" {
		tag = sf.Tag.Get("json")
	}
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = sf.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "[" + key + "]"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
