// Package translit converts search text between Latin and local scripts for
// registries that index in a non-Latin alphabet. Bulgarian Cyrillic is the
// only script the current registries need; the direction is detected from
// the text so already-local input passes through unchanged.
package translit

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// HasCyrillic reports whether the text contains any Cyrillic letter.
func HasCyrillic(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}

// BulgarianToCyrillic romanised text into Bulgarian Cyrillic following the
// streamlined system. Text already in Cyrillic is returned unchanged.
func BulgarianToCyrillic(text string) string {
	if HasCyrillic(text) {
		return text
	}
	text = norm.NFC.String(text)
	var b strings.Builder
	b.Grow(len(text))
	runes := []rune(strings.ToLower(text))
	for i := 0; i < len(runes); {
		matched := false
		// Longest digraph first.
		for _, n := range []int{3, 2} {
			if i+n > len(runes) {
				continue
			}
			if cyr, ok := latinGroups[string(runes[i:i+n])]; ok {
				b.WriteString(cyr)
				i += n
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if cyr, ok := latinSingles[runes[i]]; ok {
			b.WriteString(cyr)
		} else {
			b.WriteRune(runes[i])
		}
		i++
	}
	return b.String()
}

// BulgarianToLatin romanises Bulgarian Cyrillic text following the
// streamlined system. Latin text is returned unchanged.
func BulgarianToLatin(text string) string {
	if !HasCyrillic(text) {
		return text
	}
	text = norm.NFC.String(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		lower := unicode.ToLower(r)
		lat, ok := cyrillicRunes[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if unicode.IsUpper(r) && lat != "" {
			b.WriteString(strings.ToUpper(lat[:1]) + lat[1:])
		} else {
			b.WriteString(lat)
		}
	}
	return b.String()
}

var latinGroups = map[string]string{
	"sht": "щ",
	"zh":  "ж",
	"ts":  "ц",
	"ch":  "ч",
	"sh":  "ш",
	"yu":  "ю",
	"ya":  "я",
}

var latinSingles = map[rune]string{
	'a': "а", 'b': "б", 'v': "в", 'g': "г", 'd': "д", 'e': "е",
	'z': "з", 'i': "и", 'y': "й", 'k': "к", 'l': "л", 'm': "м",
	'n': "н", 'o': "о", 'p': "п", 'r': "р", 's': "с", 't': "т",
	'u': "у", 'f': "ф", 'h': "х", 'c': "ц", 'j': "дж",
}

var cyrillicRunes = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l",
	'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s",
	'т': "t", 'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sht", 'ъ': "a", 'ь': "y", 'ю': "yu", 'я': "ya",
}
