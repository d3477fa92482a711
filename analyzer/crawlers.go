package analyzer

import "strings"

// Crawler is the display name of a known search engine crawler.
type Crawler string

const (
	Google  Crawler = "Google"
	Yandex  Crawler = "Yandex"
	Mail    Crawler = "Mail"
	Rambler Crawler = "Rambler"
	Yahoo   Crawler = "Yahoo"
	Bing    Crawler = "Bing"
)

// KnownCrawlers lists every crawler a Report carries a counter for.
var KnownCrawlers = []Crawler{Google, Yandex, Rambler, Bing, Yahoo, Mail}

// Classifier maps a lowercased user-agent to a known crawler.
type Classifier interface {
	Classify(userAgent string) (Crawler, bool)
}

type crawlerToken struct {
	token   string
	crawler Crawler
}

// crawlerTokens is checked top to bottom; the first contained token wins.
// Tokens must stay lowercase since user-agents are lowercased before matching.
var crawlerTokens = []crawlerToken{
	{"googlebot", Google},
	{"yandex.com/bots", Yandex},
	{"mail.ru_bot", Mail},
	{"stackrambler", Rambler},
	{"ysearch/slurp", Yahoo},
	{"bingbot", Bing},
}

// BotTable is the fixed, ordered crawler classifier.
type BotTable struct{}

func (BotTable) Classify(userAgent string) (Crawler, bool) {
	for _, ct := range crawlerTokens {
		if strings.Contains(userAgent, ct.token) {
			return ct.crawler, true
		}
	}
	return "", false
}
