package content

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Date is a calendar date decoded from an ISO-8601 YAML scalar.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := parseDate(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	d.Time = t
	return nil
}

// TimeRange is a [start, end] pair where a null end means "present".
type TimeRange struct {
	Start time.Time
	End   *time.Time
}

func (r *TimeRange) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 2 {
		return fmt.Errorf("line %d: time_range must be a [start, end] pair", value.Line)
	}
	start, err := parseDate(value.Content[0].Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	r.Start = start

	end := value.Content[1]
	if end.Tag == "!!null" || end.Value == "" {
		r.End = nil
		return nil
	}
	t, err := parseDate(end.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	r.End = &t
	return nil
}

// Current reports whether the range is still open.
func (r TimeRange) Current() bool {
	return r.End == nil
}

type Person struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type NamedURL struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Education struct {
	Uni       string    `yaml:"uni"`
	Degree    string    `yaml:"degree"`
	City      string    `yaml:"city"`
	State     string    `yaml:"state"`
	GPA       *float64  `yaml:"gpa"`
	TimeRange TimeRange `yaml:"time_range"`
}

type Job struct {
	Title     string     `yaml:"title"`
	Company   string     `yaml:"company"`
	City      string     `yaml:"city"`
	State     string     `yaml:"state"`
	TimeRange TimeRange  `yaml:"time_range"`
	Desc      []string   `yaml:"desc"`
	URLs      []NamedURL `yaml:"urls"`
}

type Publication struct {
	Title         string   `yaml:"title"`
	DatePublished Date     `yaml:"date_published"`
	Publisher     string   `yaml:"publisher"`
	Journal       string   `yaml:"journal"`
	Authors       []Person `yaml:"authors"`
	Desc          string   `yaml:"desc"`
	URL           string   `yaml:"url"`
}

type Patent struct {
	Title        string   `yaml:"title"`
	PatentNumber string   `yaml:"patent_number"`
	DateIssued   Date     `yaml:"date_issued"`
	Inventors    []Person `yaml:"inventors"`
	Status       string   `yaml:"status"`
	Desc         string   `yaml:"desc"`
	URL          string   `yaml:"url"`
}

type Project struct {
	Name string `yaml:"name"`
	Desc string `yaml:"desc"`
}

// loadCollection decodes a YAML list file. A missing file is an empty
// collection.
func loadCollection[T any](dir, name string) ([]T, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var items []T
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return items, nil
}

func validateState(state string) error {
	if len(state) != 2 {
		return fmt.Errorf("state %q must be a 2-letter code", state)
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("url %q must be absolute", raw)
	}
	return nil
}

func (e Education) validate() error {
	if e.Uni == "" || e.Degree == "" {
		return fmt.Errorf("uni and degree are required")
	}
	return validateState(e.State)
}

func (j Job) validate() error {
	if j.Title == "" || j.Company == "" {
		return fmt.Errorf("title and company are required")
	}
	if err := validateState(j.State); err != nil {
		return err
	}
	for _, u := range j.URLs {
		if err := validateURL(u.URL); err != nil {
			return err
		}
	}
	return nil
}

func (p Publication) validate() error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	return validateURL(p.URL)
}

func (p Patent) validate() error {
	if p.Title == "" || p.PatentNumber == "" {
		return fmt.Errorf("title and patent_number are required")
	}
	if p.Status != "pending" && p.Status != "issued" {
		return fmt.Errorf("status %q must be pending or issued", p.Status)
	}
	return validateURL(p.URL)
}

func (p Project) validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func validateAll[T interface{ validate() error }](name string, items []T) error {
	for i, it := range items {
		if err := it.validate(); err != nil {
			return fmt.Errorf("%s[%d]: %w", name, i, err)
		}
	}
	return nil
}
