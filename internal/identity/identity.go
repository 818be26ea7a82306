// Package identity provides fake client identities for a locale.
package identity

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"gopkg.in/yaml.v3"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/pkg/randompkg"
)

// PasswordLength is the length of generated client passwords.
const PasswordLength = 8

//go:embed locales/*.yaml
var localeFS embed.FS

// Locale holds the text content used for one locale.
//
// Empty lists fall back to the gofakeit generators.
type Locale struct {
	Country     string   `yaml:"country"`
	FirstNames  []string `yaml:"first_names"`
	LastNames   []string `yaml:"last_names"`
	StreetNames []string `yaml:"street_names"`
	Cities      []string `yaml:"cities"`
	States      []string `yaml:"states"`
}

// LoadLocale reads the embedded locale pack for tag.
func LoadLocale(tag string) (Locale, error) {
	var l Locale

	b, err := localeFS.ReadFile(path.Join("locales", tag+".yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return l, fmt.Errorf("%w: %q", domain.ErrUnsupportedLocale, tag)
		}

		return l, err
	}

	if err := yaml.Unmarshal(b, &l); err != nil {
		return l, fmt.Errorf("locale %q: %w", tag, err)
	}

	return l, nil
}

// Locales lists the supported locale tags.
func Locales() []string {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil
	}

	tags := make([]string, 0, len(entries))
	for _, e := range entries {
		tags = append(tags, strings.TrimSuffix(e.Name(), ".yaml"))
	}

	sort.Strings(tags)

	return tags
}

// Provider generates identities from the run's random generator.
type Provider struct {
	locale Locale
	rnd    *randompkg.Generator
	faker  *gofakeit.Faker
}

// New returns a Provider for the locale tag drawing from rnd.
func New(tag string, rnd *randompkg.Generator) (*Provider, error) {
	l, err := LoadLocale(tag)
	if err != nil {
		return nil, err
	}

	return &Provider{
		locale: l,
		rnd:    rnd,
		faker:  &gofakeit.Faker{Rand: rnd.Rand()},
	}, nil
}

// NewIdentity returns a fake identity.
//
// Draw order: first name, last name, password, street number, street name, city, state.
func (p *Provider) NewIdentity() domain.Identity {
	var id domain.Identity

	id.FirstName = p.pick(p.locale.FirstNames, p.faker.FirstName)
	id.LastName = p.pick(p.locale.LastNames, p.faker.LastName)
	id.Password = p.faker.Password(true, true, true, false, false, PasswordLength)
	id.Address = domain.Address{
		StreetNumber: p.faker.StreetNumber(),
		StreetName:   p.pick(p.locale.StreetNames, p.faker.StreetName),
		City:         p.pick(p.locale.Cities, p.faker.City),
		State:        p.pick(p.locale.States, p.faker.State),
		Country:      p.locale.Country,
	}

	return id
}

func (p *Provider) pick(list []string, fallback func() string) string {
	if len(list) == 0 {
		return fallback()
	}

	return list[p.rnd.Intn(len(list))]
}
