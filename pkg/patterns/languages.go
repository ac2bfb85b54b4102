package patterns

import "regexp"

// The concrete tables. Compiled once; providers are stateless and safe for
// concurrent use.

// NewCStyle returns the provider for brace-and-semicolon languages
// (JavaScript, TypeScript, Java, C, C++, Go, Rust).
func NewCStyle() Provider { return cStyleTable }

// NewPython returns the provider for indentation-and-colon languages
// (Python, and near enough for Ruby).
func NewPython() Provider { return pythonTable }

// NewGeneric returns the catch-all provider used for unrecognized language
// tags. It is the union of the c-style and python tables, mirroring the
// single shared table the engine grew out of.
func NewGeneric() Provider { return genericTable }

var cStyleTable = &Table{
	language:        "c-style",
	commentPrefixes: []string{"//", "/*", "*", "*/", "<!--"},
	importPrefixes:  []string{"import ", "import{", "#include", "using ", "require(", "use "},

	classRe:       regexp.MustCompile(`^(?:export\s+|public\s+|private\s+|abstract\s+|final\s+)*class\s+([A-Za-z_$]\w*)`),
	constructorRe: regexp.MustCompile(`^(?:public\s+)?constructor\s*\(`),
	funcRes: []*regexp.Regexp{
		regexp.MustCompile(`^(?:export\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$]\w*)`),
		regexp.MustCompile(`^(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$]\w*)\s*=\s*(?:async\s+)?\([^)]*\)\s*=>`),
		regexp.MustCompile(`^(?:pub\s+)?fn\s+([A-Za-z_]\w*)`),
		regexp.MustCompile(`^func\s+(?:\([^)]*\)\s*)?([A-Za-z_]\w*)`),
		regexp.MustCompile(`^(?:public|private|protected)\s+(?:static\s+)?[\w<>\[\]]+\s+([a-z]\w*)\s*\([^)]*\)\s*\{?$`),
	},
	declRe:   regexp.MustCompile(`^(?:var|let|const|int|long|short|float|double|char|bool|boolean|string|String|auto)\s+([A-Za-z_$]\w*)\s*(?:=\s*(.+?))?\s*;?$`),
	forRe:    regexp.MustCompile(`^for\s*\((.*?);(.*?);(.*?)\)`),
	forInRe:  regexp.MustCompile(`^for\s*\(\s*(?:const\s+|let\s+|var\s+|[A-Za-z_$][\w<>\[\]]*\s+)?([A-Za-z_$]\w*)\s*(?:\bof\b|\bin\b|:)\s*(.+?)\)`),
	whileRe:  regexp.MustCompile(`^\}?\s*while\s*\((.*)\)\s*\{?$`),
	ifRe:     regexp.MustCompile(`^if\s*\((.*?)\)|^if\s+(.+?)\s*\{$`),
	elseIfRe: regexp.MustCompile(`^\}?\s*else\s+if\s*\((.*?)\)|^\}?\s*else\s+if\s+(.+?)\s*\{$`),
	elseRe:   regexp.MustCompile(`^\}?\s*else\s*(\{.*)?$`),
	printRes: []*regexp.Regexp{
		regexp.MustCompile(`^(?:console\.(?:log|info|warn|error)|System\.out\.print(?:ln)?|fmt\.Print(?:ln|f)?|printf|println|print|puts|echo)\s*\((.*)\)\s*;?$`),
	},
	inputRe:     regexp.MustCompile(`\b(?:prompt|scanf|readline|nextInt|nextLine|gets)\s*\(`),
	returnRe:    regexp.MustCompile(`^return\b\s*(.*?)\s*;?$`),
	throwRe:     regexp.MustCompile(`^throw\s+(?:new\s+)?(.+?)\s*;?$`),
	assignRe:    regexp.MustCompile(`^([A-Za-z_$]\w*)\s*(\+=|-=|\*=|/=|%=|=)\s*(.+?)\s*;?$`),
	incDecRe:    regexp.MustCompile(`^([A-Za-z_$]\w*)\s*(\+\+|--)\s*;?$`),
	preIncDecRe: regexp.MustCompile(`^(\+\+|--)\s*([A-Za-z_$]\w*)\s*;?$`),
	methodRe:    regexp.MustCompile(`^([A-Za-z_$][\w$.\[\]]*)\.([A-Za-z_$]\w*)\s*\((.*)\)\s*;?$`),
	callRe:      regexp.MustCompile(`^([A-Za-z_$]\w*)\s*\((.*)\)\s*;?$`),
	tryRe:       regexp.MustCompile(`^try\s*\{?$`),
	catchRes: []*regexp.Regexp{
		regexp.MustCompile(`^\}?\s*catch\s*(?:\(\s*(?:[\w<>]+\s+)?([A-Za-z_$]\w*)?[^)]*\))?`),
	},
	switchRe:   regexp.MustCompile(`^switch\s*\(`),
	caseRe:     regexp.MustCompile(`^(?:case\b.*|default\s*:?)$`),
	breakRe:    regexp.MustCompile(`^break\s*;?$`),
	continueRe: regexp.MustCompile(`^continue\s*;?$`),
	arrayRe:    regexp.MustCompile(`^([A-Za-z_$]\w*)\s*\[\s*([^\]]+)\s*\]`),
}

var pythonTable = &Table{
	language:        "python-style",
	commentPrefixes: []string{"#", `"""`, "'''"},
	importPrefixes:  []string{"import ", "from "},

	classRe:       regexp.MustCompile(`^class\s+([A-Za-z_]\w*)`),
	constructorRe: regexp.MustCompile(`^def\s+__init__\s*\(`),
	funcRes: []*regexp.Regexp{
		regexp.MustCompile(`^(?:async\s+)?def\s+([A-Za-z_]\w*)`),
	},
	forInRe:  regexp.MustCompile(`^for\s+([A-Za-z_]\w*)\s+in\s+(.+?)\s*:`),
	whileRe:  regexp.MustCompile(`^while\s+(.+?)\s*:`),
	ifRe:     regexp.MustCompile(`^if\s+(.+?)\s*:`),
	elseIfRe: regexp.MustCompile(`^elif\s+(.+?)\s*:`),
	elseRe:   regexp.MustCompile(`^else\s*:`),
	printRes: []*regexp.Regexp{
		regexp.MustCompile(`^print\s*\((.*)\)\s*$`),
	},
	inputRe:  regexp.MustCompile(`\binput\s*\(`),
	returnRe: regexp.MustCompile(`^return\b\s*(.*)$`),
	throwRe:  regexp.MustCompile(`^raise\b\s*(.*)$`),
	assignRe: regexp.MustCompile(`^([A-Za-z_]\w*)\s*(\+=|-=|\*=|/=|%=|=)\s*(.+?)\s*$`),
	methodRe: regexp.MustCompile(`^([A-Za-z_][\w.\[\]]*)\.([A-Za-z_]\w*)\s*\((.*)\)\s*$`),
	callRe:   regexp.MustCompile(`^([A-Za-z_]\w*)\s*\((.*)\)\s*$`),
	tryRe:    regexp.MustCompile(`^try\s*:`),
	catchRes: []*regexp.Regexp{
		regexp.MustCompile(`^except\b[^:]*?(?:\bas\s+(\w+))?\s*:`),
	},
	switchRe:   regexp.MustCompile(`^match\s+.+:`),
	caseRe:     regexp.MustCompile(`^case\b.*:`),
	breakRe:    regexp.MustCompile(`^break$`),
	continueRe: regexp.MustCompile(`^continue$`),
	arrayRe:    regexp.MustCompile(`^([A-Za-z_]\w*)\s*\[\s*([^\]]+)\s*\]`),
}

var genericTable = &Table{
	language:        "generic",
	commentPrefixes: []string{"//", "#", "/*", "*", "*/", "<!--", "--"},
	importPrefixes:  []string{"import ", "from ", "#include", "using ", "require(", "use "},

	classRe:       regexp.MustCompile(`^(?:export\s+|public\s+|private\s+|abstract\s+|final\s+)*class\s+([A-Za-z_$]\w*)`),
	constructorRe: regexp.MustCompile(`^(?:(?:public\s+)?constructor\s*\(|def\s+__init__\s*\()`),
	funcRes: []*regexp.Regexp{
		regexp.MustCompile(`^(?:async\s+)?def\s+([A-Za-z_]\w*)`),
		regexp.MustCompile(`^(?:export\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$]\w*)`),
		regexp.MustCompile(`^(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$]\w*)\s*=\s*(?:async\s+)?\([^)]*\)\s*=>`),
		regexp.MustCompile(`^(?:pub\s+)?fn\s+([A-Za-z_]\w*)`),
		regexp.MustCompile(`^func\s+(?:\([^)]*\)\s*)?([A-Za-z_]\w*)`),
	},
	declRe:   regexp.MustCompile(`^(?:var|let|const|int|long|short|float|double|char|bool|boolean|string|String|auto)\s+([A-Za-z_$]\w*)\s*(?:=\s*(.+?))?\s*;?$`),
	forRe:    regexp.MustCompile(`^for\s*\((.*?);(.*?);(.*?)\)`),
	forInRe:  regexp.MustCompile(`^for\s*\(\s*(?:const\s+|let\s+|var\s+)?([A-Za-z_$]\w*)\s+(?:of|in)\s+(.+?)\)|^for\s+([A-Za-z_]\w*)\s+in\s+(.+?)\s*:`),
	whileRe:  regexp.MustCompile(`^\}?\s*while\s*\((.*)\)\s*\{?$|^while\s+(.+?)\s*:`),
	ifRe:     regexp.MustCompile(`^if\s*\((.*?)\)|^if\s+(.+?)\s*[:{]`),
	elseIfRe: regexp.MustCompile(`^\}?\s*else\s+if\s*\((.*?)\)|^elif\s+(.+?)\s*:`),
	elseRe:   regexp.MustCompile(`^\}?\s*else\s*(?::|\{.*)?$`),
	printRes: []*regexp.Regexp{
		regexp.MustCompile(`^(?:console\.(?:log|info|warn|error)|System\.out\.print(?:ln)?|fmt\.Print(?:ln|f)?|printf|println|print|puts|echo)\s*\((.*)\)\s*;?$`),
	},
	inputRe:     regexp.MustCompile(`\b(?:prompt|scanf|readline|nextInt|nextLine|input|gets)\s*\(`),
	returnRe:    regexp.MustCompile(`^return\b\s*(.*?)\s*;?$`),
	throwRe:     regexp.MustCompile(`^(?:throw\s+(?:new\s+)?|raise\s+)(.+?)\s*;?$`),
	assignRe:    regexp.MustCompile(`^([A-Za-z_$]\w*)\s*(\+=|-=|\*=|/=|%=|=)\s*(.+?)\s*;?$`),
	incDecRe:    regexp.MustCompile(`^([A-Za-z_$]\w*)\s*(\+\+|--)\s*;?$`),
	preIncDecRe: regexp.MustCompile(`^(\+\+|--)\s*([A-Za-z_$]\w*)\s*;?$`),
	methodRe:    regexp.MustCompile(`^([A-Za-z_$][\w$.\[\]]*)\.([A-Za-z_$]\w*)\s*\((.*)\)\s*;?$`),
	callRe:      regexp.MustCompile(`^([A-Za-z_$]\w*)\s*\((.*)\)\s*;?$`),
	tryRe:       regexp.MustCompile(`^try\s*[:{]?$`),
	catchRes: []*regexp.Regexp{
		regexp.MustCompile(`^\}?\s*catch\s*(?:\(\s*(?:[\w<>]+\s+)?([A-Za-z_$]\w*)?[^)]*\))?`),
		regexp.MustCompile(`^except\b[^:]*?(?:\bas\s+(\w+))?\s*:`),
	},
	switchRe:   regexp.MustCompile(`^(?:switch\s*\(|match\s+.+:)`),
	caseRe:     regexp.MustCompile(`^(?:case\b.*|default\s*:?)$`),
	breakRe:    regexp.MustCompile(`^break\s*;?$`),
	continueRe: regexp.MustCompile(`^continue\s*;?$`),
	arrayRe:    regexp.MustCompile(`^([A-Za-z_$]\w*)\s*\[\s*([^\]]+)\s*\]`),
}
