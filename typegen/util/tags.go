package util

import (
	"reflect"
	"strconv"
	"strings"
)

// FieldTagInfo holds what the struct tags say about one field.
type FieldTagInfo struct {
	JSONName       string // Name from the json tag, empty when absent
	Omitempty      bool   // json omitempty or omitzero
	Skip           bool   // json:"-" or tstype:"-"
	CustomType     string // tstype override, e.g. tstype:"Record<string, number>"
	CustomOptional bool   // tstype:",optional"
	Readonly       bool   // readonly:"true" (any value other than "false")
}

// ParseFieldTags extracts json, tstype and readonly information from a raw
// struct tag as returned by types.Struct.Tag.
func ParseFieldTags(tag string) FieldTagInfo {
	var info FieldTagInfo
	st := reflect.StructTag(tag)

	if jsonTag, ok := st.Lookup("json"); ok {
		parts := strings.Split(jsonTag, ",")
		if parts[0] == "-" && len(parts) == 1 {
			info.Skip = true
			return info
		}
		info.JSONName = parts[0]
		for _, opt := range parts[1:] {
			if opt == "omitempty" || opt == "omitzero" {
				info.Omitempty = true
			}
		}
	}

	if tsTag, ok := st.Lookup("tstype"); ok {
		if tsTag == "-" {
			info.Skip = true
			return info
		}
		parts := strings.Split(tsTag, ",")
		info.CustomType = strings.TrimSpace(parts[0])
		for _, opt := range parts[1:] {
			if opt == "optional" {
				info.CustomOptional = true
			}
		}
	}

	if ro, ok := st.Lookup("readonly"); ok && ro != "false" {
		info.Readonly = true
	}

	return info
}

// NoConstraint marks an unset Min or Max.
const NoConstraint = -1

// ValidateTagInfo holds parsed information from a validate struct tag
type ValidateTagInfo struct {
	Required bool // Has required constraint
	Min      int  // Minimum value/length/items (NoConstraint if not set)
	Max      int  // Maximum value/length/items (NoConstraint if not set)
}

// ParseValidateTag extracts validation constraints from a validate tag.
// Supports: required, min=N, max=N, len=N
// Returns nil if there's no validate tag.
func ParseValidateTag(tag string) *ValidateTagInfo {
	validateTag := reflect.StructTag(tag).Get("validate")
	if validateTag == "" {
		return nil
	}

	info := &ValidateTagInfo{Min: NoConstraint, Max: NoConstraint}

	for _, part := range strings.Split(validateTag, ",") {
		part = strings.TrimSpace(part)
		if part == "required" {
			info.Required = true
			continue
		}

		key, valueStr, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(valueStr))
		if err != nil {
			continue
		}
		switch strings.TrimSpace(key) {
		case "min":
			info.Min = v
		case "max":
			info.Max = v
		case "len":
			info.Min, info.Max = v, v
		}
	}

	return info
}
