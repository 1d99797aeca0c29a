// Package property holds the controlled vocabulary of classification values
// offered when assets are tagged.
//
// Every key except Подкатегория is a flat ordered list. Subcategories are kept
// per parent category.
package property

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/assetsearch/internal/domain"
	"github.com/kailas-cloud/assetsearch/internal/domain/asset"
)

// Keys lists the flat vocabulary keys in display order.
var Keys = []string{
	asset.PropCategory,
	asset.PropResponsible,
	asset.PropProductGroup,
	asset.PropFileType,
	asset.PropContentType,
	asset.PropProductName,
	asset.PropSKU,
}

// Vocabulary is the set of allowed property values.
type Vocabulary struct {
	values        map[string][]string
	subcategories map[string][]string
}

// Snapshot is the plain form of a Vocabulary used for storage and transport.
type Snapshot struct {
	Values        map[string][]string `json:"values"`
	Subcategories map[string][]string `json:"subcategories"`
}

// Defaults returns the vocabulary a fresh installation starts with.
func Defaults() Vocabulary {
	return FromSnapshot(Snapshot{
		Values: map[string][]string{
			asset.PropCategory:    {"POS", "Web", "Наружная реклама", "Брендирование", "Мерч"},
			asset.PropResponsible: {"Запутряев", "Каулин", "Садыков", "Искандер", "Раханский", "Соколов", "Казанский"},
			asset.PropProductGroup: {
				"Масла Моторные", "Масла Трансмиссионные", "Масла 2Т", "Масла 4Т", "Масла ГУР",
				"Смазки Валера", "Смазки Для тормозной системы", "Смазки Для подшипников",
				"Смазки Силиконовые", "Смазки Вело-мото", "Смазки Строительно-бытовые",
				"Смазки Промышленные", "Очистители двс", "Добавки в масло", "Добавки в топливо",
				"Бытовая химия", "Чистики", "Уголок моториста",
			},
			asset.PropFileType:    {"Главное фото", "Фото", "Видео", "Документ", "PNG"},
			asset.PropContentType: {"Макет", "Товар"},
			asset.PropProductName: {},
			asset.PropSKU:         {},
		},
		Subcategories: map[string][]string{
			"POS":              {"Листовка", "Постер", "Буклет", "Каталог"},
			"Web":              {"Баннер", "Видео", "Акции"},
			"Наружная реклама": {"Баннер"},
			"Брендирование":    {"Авто", "СТО", "ПЗМ"},
			"Мерч":             {"Одежда", "Канцелярия", "Новый год"},
		},
	})
}

// FromSnapshot rebuilds a Vocabulary. Missing flat keys are added empty; unknown keys are dropped.
func FromSnapshot(s Snapshot) Vocabulary {
	v := Vocabulary{
		values:        make(map[string][]string, len(Keys)),
		subcategories: make(map[string][]string, len(s.Subcategories)),
	}
	for _, k := range Keys {
		v.values[k] = append([]string{}, s.Values[k]...)
	}
	for parent, subs := range s.Subcategories {
		v.subcategories[parent] = append([]string{}, subs...)
	}
	return v
}

// Snapshot returns a deep copy in plain form.
func (v *Vocabulary) Snapshot() Snapshot {
	s := Snapshot{
		Values:        make(map[string][]string, len(v.values)),
		Subcategories: make(map[string][]string, len(v.subcategories)),
	}
	for k, vals := range v.values {
		s.Values[k] = slices.Clone(vals)
	}
	for parent, subs := range v.subcategories {
		s.Subcategories[parent] = slices.Clone(subs)
	}
	return s
}

// Values returns the allowed values of a flat key, or nil for an unknown key.
func (v *Vocabulary) Values(key string) []string {
	return slices.Clone(v.values[key])
}

// Subcategories returns the subcategories of category.
func (v *Vocabulary) Subcategories(category string) []string {
	return slices.Clone(v.subcategories[category])
}

// HasSubcategories reports whether category has at least one subcategory.
func (v *Vocabulary) HasSubcategories(category string) bool {
	return len(v.subcategories[category]) > 0
}

// Add appends value to key. It reports false when the value is already present.
// Subcategories need a parent; the parent list is created on first use.
func (v *Vocabulary) Add(key, value, parent string) (bool, error) {
	value = strings.TrimSpace(value)
	list, err := v.get(key, parent, true)
	if err != nil {
		return false, err
	}
	if value == "" {
		return false, fmt.Errorf("%s: value is required: %w", key, domain.ErrInvalidProperty)
	}
	if slices.Contains(list, value) {
		return false, nil
	}
	v.set(key, parent, append(list, value))
	return true, nil
}

// Rename replaces oldValue with newValue in place, keeping its position.
// Renaming a category carries its subcategories over.
func (v *Vocabulary) Rename(key, oldValue, newValue, parent string) error {
	newValue = strings.TrimSpace(newValue)
	if newValue == "" {
		return fmt.Errorf("%s: new value is required: %w", key, domain.ErrInvalidProperty)
	}
	list, err := v.get(key, parent, false)
	if err != nil {
		return err
	}
	i := slices.Index(list, oldValue)
	if i < 0 {
		return fmt.Errorf("%s %q: %w", key, oldValue, domain.ErrPropertyNotFound)
	}
	if slices.Contains(list, newValue) {
		return fmt.Errorf("%s %q: %w", key, newValue, domain.ErrPropertyConflict)
	}
	list[i] = newValue

	if key == asset.PropCategory {
		if subs, ok := v.subcategories[oldValue]; ok {
			delete(v.subcategories, oldValue)
			v.subcategories[newValue] = subs
		}
	}
	return nil
}

// Remove deletes value from key. A category that still has subcategories cannot be removed.
func (v *Vocabulary) Remove(key, value, parent string) error {
	list, err := v.get(key, parent, false)
	if err != nil {
		return err
	}
	i := slices.Index(list, value)
	if i < 0 {
		return fmt.Errorf("%s %q: %w", key, value, domain.ErrPropertyNotFound)
	}
	if key == asset.PropCategory && v.HasSubcategories(value) {
		return fmt.Errorf("category %q has subcategories %v: %w",
			value, v.subcategories[value], domain.ErrPropertyInUse)
	}
	list = slices.Delete(list, i, i+1)
	if key == asset.PropSubcategory && len(list) == 0 {
		delete(v.subcategories, parent)
		return nil
	}
	v.set(key, parent, list)
	return nil
}

// RegisterProduct adds a product name and its SKUs, skipping blanks and duplicates.
// It reports whether anything was added.
func (v *Vocabulary) RegisterProduct(name string, skus ...string) bool {
	changed := v.register(asset.PropProductName, name)
	for _, sku := range skus {
		if v.register(asset.PropSKU, sku) {
			changed = true
		}
	}
	return changed
}

func (v *Vocabulary) register(key, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || slices.Contains(v.values[key], value) {
		return false
	}
	v.values[key] = append(v.values[key], value)
	return true
}

// get returns the list key refers to; subcategories are looked up under parent.
func (v *Vocabulary) get(key, parent string, create bool) ([]string, error) {
	if key != asset.PropSubcategory {
		list, ok := v.values[key]
		if !ok {
			return nil, fmt.Errorf("unknown property %q: %w", key, domain.ErrInvalidProperty)
		}
		return list, nil
	}
	if parent == "" {
		return nil, fmt.Errorf("%s requires a parent category: %w", key, domain.ErrInvalidProperty)
	}
	list, ok := v.subcategories[parent]
	if !ok && !create {
		return nil, fmt.Errorf("category %q has no subcategories: %w", parent, domain.ErrPropertyNotFound)
	}
	return list, nil
}

func (v *Vocabulary) set(key, parent string, list []string) {
	if key == asset.PropSubcategory {
		v.subcategories[parent] = list
		return
	}
	v.values[key] = list
}

// IsKnown reports whether key is part of the vocabulary.
func IsKnown(key string) bool {
	return key == asset.PropSubcategory || slices.Contains(Keys, key)
}
