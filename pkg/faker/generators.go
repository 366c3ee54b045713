package faker

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v7"
)

// dateLayouts aceitos por date.between.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

const alphaNumeric = "abcdefghijklmnopqrstuvwxyz0123456789"

// registerDefaults registra as categorias padrão. A ordem importa: em nomes
// repetidos (ex: avatar) vale a primeira categoria.
func registerDefaults(c *Catalog) {
	noArgs := func(fn func(f *gofakeit.Faker) any) Generator {
		return func(f *gofakeit.Faker, args []any) (any, error) {
			if err := maxArgs(args, 0); err != nil {
				return nil, err
			}
			return fn(f), nil
		}
	}

	// name
	c.Register("name", "firstName", noArgs(func(f *gofakeit.Faker) any { return f.FirstName() }))
	c.Register("name", "lastName", noArgs(func(f *gofakeit.Faker) any { return f.LastName() }))
	c.Register("name", "findName", noArgs(func(f *gofakeit.Faker) any { return f.Name() }))
	c.Register("name", "prefix", noArgs(func(f *gofakeit.Faker) any { return f.NamePrefix() }))
	c.Register("name", "suffix", noArgs(func(f *gofakeit.Faker) any { return f.NameSuffix() }))
	c.Register("name", "jobTitle", noArgs(func(f *gofakeit.Faker) any { return f.JobTitle() }))

	// address
	c.Register("address", "zipCode", noArgs(func(f *gofakeit.Faker) any { return f.Zip() }))
	c.Register("address", "city", noArgs(func(f *gofakeit.Faker) any { return f.City() }))
	c.Register("address", "streetName", noArgs(func(f *gofakeit.Faker) any { return f.StreetName() }))
	c.Register("address", "streetAddress", noArgs(func(f *gofakeit.Faker) any { return f.Street() }))
	c.Register("address", "streetSuffix", noArgs(func(f *gofakeit.Faker) any { return f.StreetSuffix() }))
	c.Register("address", "secondaryAddress", noArgs(func(f *gofakeit.Faker) any { return f.Numerify("Apt. ###") }))
	c.Register("address", "country", noArgs(func(f *gofakeit.Faker) any { return f.Country() }))
	c.Register("address", "countryCode", noArgs(func(f *gofakeit.Faker) any { return f.CountryAbr() }))
	c.Register("address", "state", noArgs(func(f *gofakeit.Faker) any { return f.State() }))
	c.Register("address", "stateAbbr", noArgs(func(f *gofakeit.Faker) any { return f.StateAbr() }))
	c.Register("address", "latitude", noArgs(func(f *gofakeit.Faker) any { return f.Latitude() }))
	c.Register("address", "longitude", noArgs(func(f *gofakeit.Faker) any { return f.Longitude() }))

	// phone
	c.Register("phone", "phoneNumber", noArgs(func(f *gofakeit.Faker) any { return f.Phone() }))
	c.Register("phone", "phoneNumberFormat", noArgs(func(f *gofakeit.Faker) any { return f.PhoneFormatted() }))

	// internet
	c.Register("internet", "avatar", noArgs(avatarURL))
	c.Register("internet", "email", noArgs(func(f *gofakeit.Faker) any { return f.Email() }))
	c.Register("internet", "userName", noArgs(func(f *gofakeit.Faker) any { return f.Username() }))
	c.Register("internet", "domainName", noArgs(func(f *gofakeit.Faker) any { return f.DomainName() }))
	c.Register("internet", "domainSuffix", noArgs(func(f *gofakeit.Faker) any { return f.DomainSuffix() }))
	c.Register("internet", "ip", noArgs(func(f *gofakeit.Faker) any { return f.IPv4Address() }))
	c.Register("internet", "ipv6", noArgs(func(f *gofakeit.Faker) any { return f.IPv6Address() }))
	c.Register("internet", "userAgent", noArgs(func(f *gofakeit.Faker) any { return f.UserAgent() }))
	c.Register("internet", "color", noArgs(func(f *gofakeit.Faker) any { return f.HexColor() }))
	c.Register("internet", "url", noArgs(func(f *gofakeit.Faker) any { return f.URL() }))
	c.Register("internet", "password", func(f *gofakeit.Faker, args []any) (any, error) {
		args = spread(args)
		if err := maxArgs(args, 1); err != nil {
			return nil, err
		}
		n, err := optInt(args, 0, 15)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("password length must be positive, got %d", n)
		}
		return f.Password(true, true, true, false, false, n), nil
	})

	// company
	c.Register("company", "companyName", noArgs(func(f *gofakeit.Faker) any { return f.Company() }))
	c.Register("company", "companySuffix", noArgs(func(f *gofakeit.Faker) any { return f.CompanySuffix() }))
	c.Register("company", "catchPhrase", noArgs(func(f *gofakeit.Faker) any {
		return capitalize(f.Adjective() + " " + f.BuzzWord() + " " + f.Noun())
	}))
	c.Register("company", "bs", noArgs(func(f *gofakeit.Faker) any { return f.BS() }))

	// image
	c.Register("image", "imageUrl", func(f *gofakeit.Faker, args []any) (any, error) {
		args = spread(args)
		if err := maxArgs(args, 2); err != nil {
			return nil, err
		}
		w, err := optInt(args, 0, 640)
		if err != nil {
			return nil, err
		}
		h, err := optInt(args, 1, 480)
		if err != nil {
			return nil, err
		}
		return fmt.Sprintf("https://picsum.photos/%d/%d", w, h), nil
	})
	c.Register("image", "avatar", noArgs(avatarURL))

	// lorem
	c.Register("lorem", "word", noArgs(func(f *gofakeit.Faker) any { return f.LoremIpsumWord() }))
	c.Register("lorem", "words", func(f *gofakeit.Faker, args []any) (any, error) {
		n, err := countArg(args, 3)
		if err != nil {
			return nil, err
		}
		return strings.Join(loremWords(f, n), " "), nil
	})
	c.Register("lorem", "sentence", func(f *gofakeit.Faker, args []any) (any, error) {
		n, err := countArg(args, f.Number(3, 10))
		if err != nil {
			return nil, err
		}
		return sentence(f, n), nil
	})
	c.Register("lorem", "sentences", func(f *gofakeit.Faker, args []any) (any, error) {
		n, err := countArg(args, 3)
		if err != nil {
			return nil, err
		}
		return strings.Join(sentences(f, n), " "), nil
	})
	c.Register("lorem", "paragraph", func(f *gofakeit.Faker, args []any) (any, error) {
		n, err := countArg(args, 3)
		if err != nil {
			return nil, err
		}
		return strings.Join(sentences(f, n), " "), nil
	})
	c.Register("lorem", "paragraphs", func(f *gofakeit.Faker, args []any) (any, error) {
		n, err := countArg(args, 3)
		if err != nil {
			return nil, err
		}
		paragraphs := make([]string, n)
		for i := range paragraphs {
			paragraphs[i] = strings.Join(sentences(f, 3), " ")
		}
		return strings.Join(paragraphs, "\n \r"), nil
	})

	// helpers
	c.Register("helpers", "randomize", pickElement)
	c.Register("helpers", "shuffle", func(f *gofakeit.Faker, args []any) (any, error) {
		items, err := listArg(args)
		if err != nil {
			return nil, err
		}
		out := append([]any(nil), items...)
		for i := len(out) - 1; i > 0; i-- {
			j := f.Number(0, i)
			out[i], out[j] = out[j], out[i]
		}
		return out, nil
	})
	c.Register("helpers", "slugify", func(f *gofakeit.Faker, args []any) (any, error) {
		s, err := requiredString(args)
		if err != nil {
			return nil, err
		}
		return slugify(s), nil
	})
	c.Register("helpers", "replaceSymbolWithNumber", func(f *gofakeit.Faker, args []any) (any, error) {
		s, err := requiredString(args)
		if err != nil {
			return nil, err
		}
		return f.Numerify(s), nil
	})

	// date
	c.Register("date", "past", func(f *gofakeit.Faker, args []any) (any, error) {
		years, err := countArg(args, 1)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		return formatDate(f.DateRange(now.AddDate(-years, 0, 0), now)), nil
	})
	c.Register("date", "future", func(f *gofakeit.Faker, args []any) (any, error) {
		years, err := countArg(args, 1)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		return formatDate(f.DateRange(now, now.AddDate(years, 0, 0))), nil
	})
	c.Register("date", "recent", func(f *gofakeit.Faker, args []any) (any, error) {
		days, err := countArg(args, 1)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		return formatDate(f.DateRange(now.AddDate(0, 0, -days), now)), nil
	})
	c.Register("date", "between", func(f *gofakeit.Faker, args []any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("between expects 2 dates, got %d arguments", len(args))
		}
		from, err := parseDate(args[0])
		if err != nil {
			return nil, err
		}
		to, err := parseDate(args[1])
		if err != nil {
			return nil, err
		}
		if to.Before(from) {
			return nil, fmt.Errorf("between: %v is before %v", args[1], args[0])
		}
		return formatDate(f.DateRange(from, to)), nil
	})

	// random
	c.Register("random", "number", func(f *gofakeit.Faker, args []any) (any, error) {
		args = spread(args)
		if err := maxArgs(args, 2); err != nil {
			return nil, err
		}
		min, max := 0, 99999
		switch len(args) {
		case 1:
			n, err := optInt(args, 0, max)
			if err != nil {
				return nil, err
			}
			max = n
		case 2:
			lo, err := optInt(args, 0, min)
			if err != nil {
				return nil, err
			}
			hi, err := optInt(args, 1, max)
			if err != nil {
				return nil, err
			}
			min, max = lo, hi
		}
		if max < min {
			return nil, fmt.Errorf("number: max %d is lower than min %d", max, min)
		}
		return f.Number(min, max), nil
	})
	c.Register("random", "uuid", noArgs(func(f *gofakeit.Faker) any { return f.UUID() }))
	c.Register("random", "boolean", noArgs(func(f *gofakeit.Faker) any { return f.Bool() }))
	c.Register("random", "arrayElement", pickElement)
	c.Register("random", "alphaNumeric", func(f *gofakeit.Faker, args []any) (any, error) {
		n, err := countArg(args, 1)
		if err != nil {
			return nil, err
		}
		var sb strings.Builder
		for i := 0; i < n; i++ {
			sb.WriteByte(alphaNumeric[f.Number(0, len(alphaNumeric)-1)])
		}
		return sb.String(), nil
	})

	// finance
	c.Register("finance", "account", func(f *gofakeit.Faker, args []any) (any, error) {
		n, err := countArg(args, 8)
		if err != nil {
			return nil, err
		}
		return f.Numerify(strings.Repeat("#", n)), nil
	})
	c.Register("finance", "accountName", noArgs(func(f *gofakeit.Faker) any {
		return f.RandomString([]string{"Checking", "Savings", "Money Market", "Investment", "Home Loan", "Credit Card", "Auto Loan", "Personal Loan"}) + " Account"
	}))
	c.Register("finance", "amount", func(f *gofakeit.Faker, args []any) (any, error) {
		args = spread(args)
		if err := maxArgs(args, 3); err != nil {
			return nil, err
		}
		min, err := optInt(args, 0, 0)
		if err != nil {
			return nil, err
		}
		max, err := optInt(args, 1, 1000)
		if err != nil {
			return nil, err
		}
		dec, err := optInt(args, 2, 2)
		if err != nil {
			return nil, err
		}
		if max < min || dec < 0 {
			return nil, fmt.Errorf("amount: invalid range [%d, %d] with %d decimals", min, max, dec)
		}
		scale := math.Pow10(dec)
		return math.Round(f.Price(float64(min), float64(max))*scale) / scale, nil
	})
	c.Register("finance", "mask", func(f *gofakeit.Faker, args []any) (any, error) {
		n, err := countArg(args, 4)
		if err != nil {
			return nil, err
		}
		return f.Numerify(strings.Repeat("#", n)), nil
	})
	c.Register("finance", "transactionType", noArgs(func(f *gofakeit.Faker) any {
		return f.RandomString([]string{"deposit", "withdrawal", "payment", "invoice"})
	}))
	c.Register("finance", "currencyCode", noArgs(func(f *gofakeit.Faker) any { return f.CurrencyShort() }))
	c.Register("finance", "currencyName", noArgs(func(f *gofakeit.Faker) any { return f.CurrencyLong() }))

	// hacker
	c.Register("hacker", "abbreviation", noArgs(func(f *gofakeit.Faker) any { return f.HackerAbbreviation() }))
	c.Register("hacker", "adjective", noArgs(func(f *gofakeit.Faker) any { return f.HackerAdjective() }))
	c.Register("hacker", "noun", noArgs(func(f *gofakeit.Faker) any { return f.HackerNoun() }))
	c.Register("hacker", "verb", noArgs(func(f *gofakeit.Faker) any { return f.HackerVerb() }))
	c.Register("hacker", "ingverb", noArgs(func(f *gofakeit.Faker) any { return f.HackeringVerb() }))
	c.Register("hacker", "phrase", noArgs(func(f *gofakeit.Faker) any { return f.HackerPhrase() }))
}

func avatarURL(f *gofakeit.Faker) any {
	return "https://i.pravatar.cc/150?u=" + f.UUID()
}

// pickElement aceita tanto `randomize([a, b, c])` quanto `randomize(a, b, c)`.
func pickElement(f *gofakeit.Faker, args []any) (any, error) {
	items, err := listArg(args)
	if err != nil {
		return nil, err
	}
	return items[f.Number(0, len(items)-1)], nil
}

func loremWords(f *gofakeit.Faker, n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = f.LoremIpsumWord()
	}
	return words
}

func sentence(f *gofakeit.Faker, n int) string {
	if n == 0 {
		return ""
	}
	return capitalize(strings.Join(loremWords(f, n), " ")) + "."
}

func sentences(f *gofakeit.Faker, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = sentence(f, f.Number(3, 10))
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func slugify(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			dash = false
		case !dash && sb.Len() > 0:
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseDate(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("date argument must be a string, got %T", v)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use RFC3339 or YYYY-MM-DD)", s)
}

// --- helpers de argumentos ---

func maxArgs(args []any, n int) error {
	if len(args) > n {
		return fmt.Errorf("expected at most %d arguments, got %d", n, len(args))
	}
	return nil
}

func optInt(args []any, i, def int) (int, error) {
	if i >= len(args) {
		return def, nil
	}
	n, ok := args[i].(int)
	if !ok {
		return 0, fmt.Errorf("argument %d must be an integer, got %T", i, args[i])
	}
	return n, nil
}

// countArg lê um único argumento inteiro não negativo (ex: words(5)).
func countArg(args []any, def int) (int, error) {
	args = spread(args)
	if err := maxArgs(args, 1); err != nil {
		return 0, err
	}
	n, err := optInt(args, 0, def)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("count must not be negative, got %d", n)
	}
	return n, nil
}

func requiredString(args []any) (string, error) {
	args = spread(args)
	if len(args) != 1 {
		return "", fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	return fmt.Sprint(args[0]), nil
}

func listArg(args []any) ([]any, error) {
	items := spread(args)
	if len(items) == 0 {
		return nil, fmt.Errorf("expected at least one element")
	}
	return items, nil
}

// spread desfaz o encapsulamento `metodo([a, b])`, que para os geradores
// padrão equivale a `metodo(a, b)`.
func spread(args []any) []any {
	if len(args) == 1 {
		if wrapped, ok := args[0].([]any); ok {
			return wrapped
		}
	}
	return args
}
