package translate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"persian-translator/internal/logger"
)

// Prompt templates per translation domain. Each template receives the
// marked-up batch payload in place of %s.

const promptGeneral = `Translate the following English text to Persian (Farsi). Only provide the translation, no explanations or additional text, just translate the text directly:

%s`

const promptScientific = `متن زیر را از زبان انگلیسی به زبان فارسی به صورت حرفه‌ای و دقیق ترجمه کن. در ترجمه به موارد زیر توجه کن:

1. استفاده از اصطلاحات و واژگان تخصصی دقیق در حوزه علمی مربوطه و رعایت استانداردهای علمی پذیرفته‌شده.
2. حفظ سبک علمی، دانشگاهی و تخصصی متن اصلی بدون تغییر معنا یا ابهام در مفاهیم.
3. اطمینان از صحت ساختار جملات به گونه‌ای که هم از نظر دستوری و هم از نظر مفهومی به بهترین نحو به زبان فارسی منتقل شود.
4. در صورت وجود اصطلاح یا مفهوم دشوار، در صورت امکان ارائه معادل تخصصی مربوطه.
5. رعایت تناسب و انسجام متن به گونه‌ای که همخوانی مفهومی و ساختاری حفظ شود.

فقط متن ترجمه شده را بازگردان، بدون هیچ توضیح اضافی:

%s`

const promptGenetic = `متن زیر را از زبان انگلیسی به زبان فارسی به صورت حرفه‌ای و دقیق ترجمه کن. در ترجمه به موارد زیر توجه کن:

1. استفاده از اصطلاحات و واژگان تخصصی دقیق در حوزه ژنتیک (مانند DNA، RNA، ژن، اپی‌ژنتیک، موتاسیون و سایر مفاهیم مرتبط) و رعایت استانداردهای علمی پذیرفته‌شده.
2. حفظ سبک علمی، دانشگاهی و تخصصی متن اصلی بدون تغییر معنا یا ابهام در مفاهیم.
3. اطمینان از صحت ساختار جملات به گونه‌ای که هم از نظر دستوری و هم از نظر مفهومی به بهترین نحو به زبان فارسی منتقل شود.
4. در صورت وجود اصطلاح یا مفهوم دشوار، در صورت امکان ارائه معادل تخصصی مربوطه.
5. رعایت تناسب و انسجام متن به گونه‌ای که همخوانی مفهومی و ساختاری حفظ شود.

فقط متن ترجمه شده را بازگردان، بدون هیچ توضیح اضافی:

%s`

const promptMedical = `متن زیر را از زبان انگلیسی به زبان فارسی به صورت حرفه‌ای و دقیق ترجمه کن. در ترجمه به موارد زیر توجه کن:

1. استفاده از اصطلاحات و واژگان تخصصی دقیق در حوزه پزشکی و علوم زیستی و رعایت استانداردهای علمی پزشکی پذیرفته‌شده.
2. حفظ سبک علمی، دانشگاهی و تخصصی پزشکی متن اصلی بدون تغییر معنا یا ابهام در مفاهیم.
3. اطمینان از صحت ساختار جملات به گونه‌ای که هم از نظر دستوری و هم از نظر مفهومی به بهترین نحو به زبان فارسی منتقل شود.
4. در صورت وجود اصطلاح یا مفهوم دشوار پزشکی، در صورت امکان ارائه معادل تخصصی مربوطه.
5. رعایت تناسب و انسجام متن به گونه‌ای که همخوانی مفهومی و ساختاری حفظ شود.

فقط متن ترجمه شده را بازگردان، بدون هیچ توضیح اضافی:

%s`

const promptLegal = `متن زیر را از زبان انگلیسی به زبان فارسی به صورت حرفه‌ای و دقیق ترجمه کن. در ترجمه به موارد زیر توجه کن:

1. استفاده از اصطلاحات و واژگان تخصصی دقیق در حوزه حقوقی و قانونی و رعایت استانداردهای حقوقی پذیرفته‌شده.
2. حفظ سبک رسمی، حقوقی و تخصصی متن اصلی بدون تغییر معنا یا ابهام در مفاهیم قانونی.
3. اطمینان از صحت ساختار جملات به گونه‌ای که هم از نظر دستوری و هم از نظر مفهومی به بهترین نحو به زبان فارسی منتقل شود.
4. در صورت وجود اصطلاح یا مفهوم دشوار حقوقی، در صورت امکان ارائه معادل تخصصی مربوطه.
5. رعایت تناسب و انسجام متن به گونه‌ای که همخوانی مفهومی و ساختاری حفظ شود.

فقط متن ترجمه شده را بازگردان، بدون هیچ توضیح اضافی:

%s`

const promptTechnical = `متن زیر را از زبان انگلیسی به زبان فارسی به صورت حرفه‌ای و دقیق ترجمه کن. در ترجمه به موارد زیر توجه کن:

1. استفاده از اصطلاحات و واژگان تخصصی دقیق در حوزه فنی و مهندسی و رعایت استانداردهای فنی پذیرفته‌شده.
2. حفظ سبک فنی و تخصصی متن اصلی بدون تغییر معنا یا ابهام در مفاهیم مهندسی.
3. اطمینان از صحت ساختار جملات به گونه‌ای که هم از نظر دستوری و هم از نظر مفهومی به بهترین نحو به زبان فارسی منتقل شود.
4. در صورت وجود اصطلاح یا مفهوم دشوار فنی، در صورت امکان ارائه معادل تخصصی مربوطه.
5. رعایت تناسب و انسجام متن به گونه‌ای که همخوانی مفهومی و ساختاری حفظ شود.

فقط متن ترجمه شده را بازگردان، بدون هیچ توضیح اضافی:

%s`

// markerInstruction tells the model to preserve the segment markers so the
// response can be split back per element.
const markerInstruction = `The text consists of numbered segments, each introduced by a marker of the form [[n]] where n is the segment number. Translate every segment separately and keep each marker on its own line directly before its translation. Do not add, drop, merge, or renumber markers.

`

var templates = map[string]string{
	"general":    promptGeneral,
	"scientific": promptScientific,
	"genetic":    promptGenetic,
	"medical":    promptMedical,
	"legal":      promptLegal,
	"technical":  promptTechnical,
}

// Template returns the prompt template for a domain. Unknown domains fall
// back to the general template with a warning.
func Template(domain string) string {
	if t, ok := templates[strings.ToLower(domain)]; ok {
		return t
	}
	logger.Warn("unknown translation domain, using general", logger.String("domain", domain))
	return promptGeneral
}

// Marker returns the positional marker for the 1-based segment index.
func Marker(index int) string {
	return fmt.Sprintf("[[%d]]", index)
}

// BuildBatchPrompt assembles the prompt for one batch: the marker
// instruction, the domain template, and the marked-up segments.
func BuildBatchPrompt(domain string, texts []string) string {
	var payload strings.Builder
	for i, text := range texts {
		if i > 0 {
			payload.WriteString("\n\n")
		}
		payload.WriteString(Marker(i + 1))
		payload.WriteString("\n")
		payload.WriteString(text)
	}
	return markerInstruction + fmt.Sprintf(Template(domain), payload.String())
}

var markerPattern = regexp.MustCompile(`\[\[(\d+)\]\]`)

// ParseBatchResponse splits a model response back into segments keyed by
// marker index. Markers may come back in any order; segments without a
// marker in the response are simply absent from the map.
func ParseBatchResponse(response string) map[int]string {
	segments := make(map[int]string)

	locs := markerPattern.FindAllStringSubmatchIndex(response, -1)
	for i, loc := range locs {
		index, err := strconv.Atoi(response[loc[2]:loc[3]])
		if err != nil || index < 1 {
			continue
		}
		end := len(response)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		text := strings.TrimSpace(response[loc[1]:end])
		if text != "" {
			segments[index] = text
		}
	}
	return segments
}
