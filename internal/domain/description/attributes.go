package description

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/yanqian/part-describer/pkg/errors"
)

var attributeSplit = regexp.MustCompile(`, *`)

// SplitAttributes breaks a description into its comma separated attributes.
func SplitAttributes(desc string) []string {
	raw := attributeSplit.Split(desc, -1)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// JoinAttributes renders attributes back into a description.
func JoinAttributes(items []string) string {
	return strings.Join(items, attributeSeparator)
}

// MoveAttribute moves the attribute at from so that it ends up at index to.
func MoveAttribute(desc string, from, to int) (string, error) {
	items := SplitAttributes(desc)
	if err := checkIndex("from", from, len(items)); err != nil {
		return "", err
	}
	if err := checkIndex("target", to, len(items)); err != nil {
		return "", err
	}
	moved := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items[:to], append([]string{moved}, items[to:]...)...)
	return JoinAttributes(items), nil
}

// EditAttribute replaces the attribute at index with value.
func EditAttribute(desc string, index int, value string) (string, error) {
	items := SplitAttributes(desc)
	if err := checkIndex("index", index, len(items)); err != nil {
		return "", err
	}
	items[index] = value
	return JoinAttributes(items), nil
}

// DeleteAttribute drops the attribute at index.
func DeleteAttribute(desc string, index int) (string, error) {
	items := SplitAttributes(desc)
	if err := checkIndex("index", index, len(items)); err != nil {
		return "", err
	}
	return JoinAttributes(append(items[:index], items[index+1:]...)), nil
}

func checkIndex(field string, index, length int) error {
	if index < 0 || index >= length {
		return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("%s %d out of range for %d attributes", field, index, length), nil)
	}
	return nil
}
