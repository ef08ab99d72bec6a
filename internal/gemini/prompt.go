package gemini

import (
	"fmt"

	"github.com/38tter/beer-analyzer-sub000/internal/models"
)

// Language selects the prompt and answer language for analysis calls.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageJapanese Language = "ja"
)

// Sentinel substituted for missing textual fields, localized with the
// analysis language.
const (
	SentinelEnglish  = "unknown"
	SentinelJapanese = "不明"
)

// ParseLanguage normalizes a configured language code, defaulting to English.
func ParseLanguage(code string) Language {
	if code == string(LanguageJapanese) {
		return LanguageJapanese
	}
	return LanguageEnglish
}

// Sentinel returns the localized "unknown" placeholder for this language.
func (l Language) Sentinel() string {
	if l == LanguageJapanese {
		return SentinelJapanese
	}
	return SentinelEnglish
}

const analysisPromptEN = `You are a beer sommelier. Look at the attached photo of a beer.
Respond with a single fenced ` + "```json" + ` block and nothing else, using exactly these keys:
{"beer_name": string, "brand": string, "manufacturer": string, "abv": string, "capacity": string, "hops": string, "is_not_beer": boolean, "website_url": string or null}
Use null for any field you cannot determine. Set "is_not_beer" to true if the photo does not show a beer.
Answer in English.`

const analysisPromptJA = `あなたはビールのソムリエです。添付されたビールの写真を見てください。
以下のキーを正確に使い、` + "```json" + ` のフェンス付きブロックを1つだけ返してください:
{"beer_name": string, "brand": string, "manufacturer": string, "abv": string, "capacity": string, "hops": string, "is_not_beer": boolean, "website_url": string or null}
判別できない項目は null にしてください。写真にビールが写っていない場合は "is_not_beer" を true にしてください。
日本語で答えてください。`

// AnalysisPrompt is the vision prompt requesting the structured beer analysis.
func AnalysisPrompt(lang Language) string {
	if lang == LanguageJapanese {
		return analysisPromptJA
	}
	return analysisPromptEN
}

// PairingPrompt is the text-only prompt asking for a food pairing suggestion
// for an already analyzed beer. The answer is expected as plain text.
func PairingPrompt(lang Language, rec *models.BeerRecord) string {
	if lang == LanguageJapanese {
		return fmt.Sprintf(
			"次のビールに合う料理やおつまみを2〜3文で提案してください。銘柄: %s、ブランド: %s、製造元: %s、アルコール度数: %s、ホップ: %s。プレーンテキストで日本語で答えてください。",
			rec.BeerName, rec.Brand, rec.Manufacturer, rec.ABV, rec.Hops)
	}
	return fmt.Sprintf(
		"Suggest food pairings for the following beer in two or three sentences. Name: %s, brand: %s, manufacturer: %s, ABV: %s, hops: %s. Answer in plain English text, no markdown.",
		rec.BeerName, rec.Brand, rec.Manufacturer, rec.ABV, rec.Hops)
}
