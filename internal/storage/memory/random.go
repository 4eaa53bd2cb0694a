package memory

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
)

// picker выбирает индекс кандидата. rand.Rand не потокобезопасен, поэтому
// доступ к источнику сериализуется.
type picker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newPicker(rnd *rand.Rand) *picker {
	return &picker{rnd: rnd}
}

// intN возвращает число в [0, n). При nil-источнике используется глобальный генератор.
func (p *picker) intN(n int) int {
	if p.rnd == nil {
		return rand.IntN(n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.IntN(n)
}

// likeMatcher компилирует SQL LIKE шаблон (% означает любую строку, _ один символ).
// Обратная косая черта экранирует следующий символ, как escape по умолчанию в PostgreSQL.
func likeMatcher(pattern string) *regexp.Regexp {
	runes := []rune(pattern)
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; {
		case r == '\\' && i+1 < len(runes):
			i++
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
		case r == '%':
			b.WriteString(".*")
		case r == '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile("(?s)" + b.String())
}
