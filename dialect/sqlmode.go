package dialect

import "strings"

// SQLMode, oturum başında ayarlanabilen MySQL sql_mode bayraklarından birini temsil eder.
type SQLMode string

const (
	AllowInvalidDates      SQLMode = "ALLOW_INVALID_DATES"
	AnsiQuotes             SQLMode = "ANSI_QUOTES"
	ErrorForDivisionByZero SQLMode = "ERROR_FOR_DIVISION_BY_ZERO"
	HighNotPrecedence      SQLMode = "HIGH_NOT_PRECEDENCE"
	IgnoreSpace            SQLMode = "IGNORE_SPACE"
	NoAutoValueOnZero      SQLMode = "NO_AUTO_VALUE_ON_ZERO"
	NoDirInCreate          SQLMode = "NO_DIR_IN_CREATE"
	NoEngineSubstitution   SQLMode = "NO_ENGINE_SUBSTITUTION"
	NoUnsignedSubtraction  SQLMode = "NO_UNSIGNED_SUBTRACTION"
	NoZeroDate             SQLMode = "NO_ZERO_DATE"
	NoZeroInDate           SQLMode = "NO_ZERO_IN_DATE"
	OnlyFullGroupBy        SQLMode = "ONLY_FULL_GROUP_BY"
	PadCharToFullLength    SQLMode = "PAD_CHAR_TO_FULL_LENGTH"
	PipesAsConcat          SQLMode = "PIPES_AS_CONCAT"
	RealAsFloat            SQLMode = "REAL_AS_FLOAT"
	StrictAllTables        SQLMode = "STRICT_ALL_TABLES"
	StrictTransTables      SQLMode = "STRICT_TRANS_TABLES"
	TimeTruncateFractional SQLMode = "TIME_TRUNCATE_FRACTIONAL"
	Ansi                   SQLMode = "ANSI"
	Traditional            SQLMode = "TRADITIONAL"

	// NoBackslashEscapes, ters bölüyü sıradan karaktere çevirir.
	// Bu grammar'ın metin kaçışını bozar; Config.Validate bu modu reddeder.
	NoBackslashEscapes SQLMode = "NO_BACKSLASH_ESCAPES"
)

// BreaksEscaping, modun MySQLGrammar'ın ürettiği literal'lerin anlamını değiştirip değiştirmediğini bildirir.
func (m SQLMode) BreaksEscaping() bool {
	return strings.EqualFold(string(m), string(NoBackslashEscapes))
}

// JoinModes, modları sql_mode sistem değişkeninin beklediği virgüllü listeye çevirir.
func JoinModes(modes []SQLMode) string {
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = strings.ToUpper(string(m))
	}
	return strings.Join(parts, ",")
}

// unsafeCharsets, çok baytlı karakterlerinin ikinci baytı 0x5C (\) olabilen karakter setleridir.
// Bu setlerde bir önek bayt kaçış ters bölüsünü yutabilir.
var unsafeCharsets = map[string]bool{
	"big5":    true,
	"cp932":   true,
	"gb2312":  true,
	"gbk":     true,
	"gb18030": true,
	"sjis":    true,
}

// IsUnsafeCharset, bağlantı karakter setinin metin kaçışıyla uyumsuz olup olmadığını bildirir.
func IsUnsafeCharset(charset string) bool {
	return unsafeCharsets[strings.ToLower(charset)]
}
