/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package size models byte quantities as a Size type with binary-unit
// parsing, formatting and viper/json/yaml decoding support.
package size

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type Size uint64

const (
	SizeNul  Size = 0
	SizeUnit Size = 1
	SizeKilo Size = SizeUnit << 10
	SizeMega Size = SizeKilo << 10
	SizeGiga Size = SizeMega << 10
	SizeTera Size = SizeGiga << 10
	SizePeta Size = SizeTera << 10
	SizeExa  Size = SizePeta << 10
)

const (
	FormatRound0 = "%.0f"
	FormatRound1 = "%.1f"
	FormatRound2 = "%.2f"
	FormatRound3 = "%.3f"
)

var units = []struct {
	suffix string
	size   Size
}{
	{"EB", SizeExa},
	{"PB", SizePeta},
	{"TB", SizeTera},
	{"GB", SizeGiga},
	{"MB", SizeMega},
	{"KB", SizeKilo},
	{"B", SizeUnit},
}

var parseUnits = map[string]Size{
	"B": SizeUnit,
	"K": SizeKilo, "KB": SizeKilo,
	"M": SizeMega, "MB": SizeMega,
	"G": SizeGiga, "GB": SizeGiga,
	"T": SizeTera, "TB": SizeTera,
	"P": SizePeta, "PB": SizePeta,
	"E": SizeExa, "EB": SizeExa,
}

// Parse interprets a human size string such as "5MB", "1.5KB" or "100" (bytes).
func Parse(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SizeNul, fmt.Errorf("size: empty value")
	}

	i := 0
	for i < len(s) && (s[i] == '.' || s[i] == '-' || s[i] == '+' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}

	numPart := s[:i]
	unitPart := strings.ToUpper(strings.TrimSpace(s[i:]))
	if unitPart == "" {
		unitPart = "B"
	}

	unit, ok := parseUnits[unitPart]
	if !ok {
		return SizeNul, fmt.Errorf("size: unknown unit %q", unitPart)
	}

	val, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return SizeNul, fmt.Errorf("size: invalid numeric value %q: %w", numPart, err)
	}

	return Size(val * float64(unit)), nil
}

// Format renders the size in its most significant unit using the given
// fmt verb (see FormatRound0..FormatRound3).
func (s Size) Format(round string) string {
	for _, u := range units {
		if s >= u.size && u.size > SizeUnit {
			return fmt.Sprintf(round+u.suffix, float64(s)/float64(u.size))
		}
	}
	return fmt.Sprintf(round+"B", float64(s))
}

func (s Size) String() string {
	return s.Format(FormatRound2)
}

func (s Size) Int64() int64 {
	if uint64(s) > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(s)
}

func (s Size) Uint64() uint64 {
	return uint64(s)
}

func (s Size) Float64() float64 {
	return float64(s)
}

func (s Size) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(s), 10)), nil
}

func (s *Size) UnmarshalJSON(b []byte) error {
	str := strings.Trim(string(b), `"`)
	if v, err := strconv.ParseUint(str, 10, 64); err == nil {
		*s = Size(v)
		return nil
	}
	p, err := Parse(str)
	if err != nil {
		return err
	}
	*s = p
	return nil
}

func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Size) UnmarshalText(b []byte) error {
	p, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = p
	return nil
}

// ViperDecoderHook lets viper/mapstructure decode strings or numbers into Size.
func ViperDecoderHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(Size(0)) {
			return data, nil
		}

		switch from.Kind() {
		case reflect.String:
			return Parse(data.(string))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return Size(reflect.ValueOf(data).Int()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return Size(reflect.ValueOf(data).Uint()), nil
		case reflect.Float32, reflect.Float64:
			return Size(reflect.ValueOf(data).Float()), nil
		default:
			return data, nil
		}
	}
}
