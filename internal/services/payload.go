package services

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Payload — тело JSON-запроса с сохранением информации о том,
// какие поля вообще пришли (нужно для частичного обновления).
type Payload map[string]json.RawMessage

func (p Payload) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// Require возвращает ошибку по первому отсутствующему полю.
func (p Payload) Require(fields ...string) error {
	for _, f := range fields {
		if !p.Has(f) {
			return missingField(f)
		}
	}
	return nil
}

func invalidType(field string) *Error {
	return badRequest("Invalid data type for field: %s", field)
}

func (p Payload) decode(field string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(p[field]))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, invalidType(field)
	}
	return v, nil
}

// String принимает только JSON-строку.
func (p Payload) String(field string) (string, error) {
	v, err := p.decode(field)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidType(field)
	}
	return s, nil
}

// Int принимает целое число или строку с целым числом.
func (p Payload) Int(field string) (int, error) {
	v, err := p.decode(field)
	if err != nil {
		return 0, err
	}
	n, ok := coerceInt(v)
	if !ok {
		return 0, invalidType(field)
	}
	return n, nil
}

// Bool: true/false, число (0 — false) или строка вида "true"/"1"; null — false.
func (p Payload) Bool(field string) (bool, error) {
	v, err := p.decode(field)
	if err != nil {
		return false, err
	}
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	case json.Number:
		f, err := b.Float64()
		if err != nil {
			return false, invalidType(field)
		}
		return f != 0, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, invalidType(field)
		}
		return parsed, nil
	default:
		return false, invalidType(field)
	}
}

// IDList — список целых идентификаторов; строки и дроби не принимаются,
// а целые <= 0 считаются несуществующими категориями.
func (p Payload) IDList(field string) ([]uint, error) {
	v, err := p.decode(field)
	if err != nil {
		return nil, ErrInvalidCategoryIDs
	}
	items, ok := v.([]any)
	if !ok {
		return nil, ErrInvalidCategoryIDs
	}
	ids := make([]uint, 0, len(items))
	unknown := false
	for _, item := range items {
		num, ok := item.(json.Number)
		if !ok {
			return nil, ErrInvalidCategoryIDs
		}
		n, ok := coerceInt(num)
		if !ok {
			return nil, ErrInvalidCategoryIDs
		}
		// целое, но такой категории быть не может
		if n <= 0 {
			unknown = true
			continue
		}
		ids = append(ids, uint(n))
	}
	if unknown {
		return nil, ErrUnknownCategoryIDs
	}
	return ids, nil
}

func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
