package analytics

import "strings"

var turkishFolding = strings.NewReplacer(
	"Ç", "C", "ç", "C",
	"Ğ", "G", "ğ", "G",
	"İ", "I", "ı", "I",
	"Ö", "O", "ö", "O",
	"Ş", "S", "ş", "S",
	"Ü", "U", "ü", "U",
)

// DistrictSlug строит ASCII-ключ района для карты: турецкие буквы
// заменяются латинскими, текст переводится в верхний регистр, прочие символы удаляются.
func DistrictSlug(name string) string {
	folded := strings.ToUpper(turkishFolding.Replace(name))
	return strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, folded)
}
