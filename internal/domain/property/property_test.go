package property

import (
	"errors"
	"slices"
	"testing"

	"github.com/kailas-cloud/assetsearch/internal/domain"
	"github.com/kailas-cloud/assetsearch/internal/domain/asset"
)

func TestDefaults(t *testing.T) {
	v := Defaults()
	if got := v.Values(asset.PropCategory); !slices.Equal(got, []string{"POS", "Web", "Наружная реклама", "Брендирование", "Мерч"}) {
		t.Errorf("categories = %v", got)
	}
	if got := v.Subcategories("Брендирование"); !slices.Equal(got, []string{"Авто", "СТО", "ПЗМ"}) {
		t.Errorf("subcategories = %v", got)
	}
	if got := v.Values(asset.PropSKU); got == nil || len(got) != 0 {
		t.Errorf("SKU values = %#v, want empty non-nil", got)
	}
	if v.Values("Цвет") != nil {
		t.Error("unknown key should have no values")
	}
}

func TestAdd(t *testing.T) {
	v := Defaults()

	added, err := v.Add(asset.PropResponsible, "  Петров ", "")
	if err != nil || !added {
		t.Fatalf("Add() = %v, %v", added, err)
	}
	if got := v.Values(asset.PropResponsible); got[len(got)-1] != "Петров" {
		t.Errorf("last responsible = %q", got[len(got)-1])
	}

	added, err = v.Add(asset.PropResponsible, "Петров", "")
	if err != nil || added {
		t.Errorf("duplicate Add() = %v, %v, want false, nil", added, err)
	}

	added, err = v.Add(asset.PropSubcategory, "Стикер", "Новая")
	if err != nil || !added {
		t.Fatalf("subcategory Add() = %v, %v", added, err)
	}
	if got := v.Subcategories("Новая"); !slices.Equal(got, []string{"Стикер"}) {
		t.Errorf("new parent subcategories = %v", got)
	}
}

func TestAdd_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value, parent string
	}{
		{"unknown key", "Цвет", "Красный", ""},
		{"blank value", asset.PropCategory, "   ", ""},
		{"subcategory without parent", asset.PropSubcategory, "Стикер", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Defaults()
			_, err := v.Add(tt.key, tt.value, tt.parent)
			if !errors.Is(err, domain.ErrInvalidProperty) {
				t.Errorf("err = %v, want ErrInvalidProperty", err)
			}
		})
	}
}

func TestRename(t *testing.T) {
	v := Defaults()
	if err := v.Rename(asset.PropFileType, "Фото", "Фотография", ""); err != nil {
		t.Fatalf("Rename() error: %v", err)
	}
	if got := v.Values(asset.PropFileType); got[1] != "Фотография" {
		t.Errorf("file types = %v, want position kept", got)
	}

	if err := v.Rename(asset.PropFileType, "Аудио", "Звук", ""); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("missing old value: err = %v", err)
	}
	if err := v.Rename(asset.PropFileType, "Видео", "PNG", ""); !errors.Is(err, domain.ErrPropertyConflict) {
		t.Errorf("duplicate new value: err = %v", err)
	}
	if err := v.Rename(asset.PropFileType, "Видео", " ", ""); !errors.Is(err, domain.ErrInvalidProperty) {
		t.Errorf("blank new value: err = %v", err)
	}
}

func TestRename_CategoryMovesSubcategories(t *testing.T) {
	v := Defaults()
	if err := v.Rename(asset.PropCategory, "Мерч", "Сувениры", ""); err != nil {
		t.Fatalf("Rename() error: %v", err)
	}
	if v.HasSubcategories("Мерч") {
		t.Error("old category still has subcategories")
	}
	if got := v.Subcategories("Сувениры"); !slices.Equal(got, []string{"Одежда", "Канцелярия", "Новый год"}) {
		t.Errorf("moved subcategories = %v", got)
	}
}

func TestRename_Subcategory(t *testing.T) {
	v := Defaults()
	if err := v.Rename(asset.PropSubcategory, "Баннер", "Растяжка", "Наружная реклама"); err != nil {
		t.Fatalf("Rename() error: %v", err)
	}
	if got := v.Subcategories("Наружная реклама"); !slices.Equal(got, []string{"Растяжка"}) {
		t.Errorf("renamed parent = %v", got)
	}
	if got := v.Subcategories("Web"); got[0] != "Баннер" {
		t.Errorf("other parent touched: %v", got)
	}
	if err := v.Rename(asset.PropSubcategory, "X", "Y", "Нет такой"); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("unknown parent: err = %v", err)
	}
}

func TestRemove(t *testing.T) {
	v := Defaults()
	if err := v.Remove(asset.PropContentType, "Макет", ""); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if got := v.Values(asset.PropContentType); !slices.Equal(got, []string{"Товар"}) {
		t.Errorf("content types = %v", got)
	}
	if err := v.Remove(asset.PropContentType, "Макет", ""); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("second Remove(): err = %v", err)
	}
}

func TestRemove_CategoryWithSubcategories(t *testing.T) {
	v := Defaults()
	if err := v.Remove(asset.PropCategory, "Наружная реклама", ""); !errors.Is(err, domain.ErrPropertyInUse) {
		t.Fatalf("err = %v, want ErrPropertyInUse", err)
	}
	if err := v.Remove(asset.PropSubcategory, "Баннер", "Наружная реклама"); err != nil {
		t.Fatalf("Remove(subcategory) error: %v", err)
	}
	if v.HasSubcategories("Наружная реклама") {
		t.Error("emptied parent should be dropped")
	}
	if err := v.Remove(asset.PropCategory, "Наружная реклама", ""); err != nil {
		t.Errorf("Remove(category) after emptying: %v", err)
	}
}

func TestRegisterProduct(t *testing.T) {
	v := Defaults()
	if !v.RegisterProduct("Смазка ВМПАвто", "1001", " ", "1002") {
		t.Fatal("first RegisterProduct() reported no change")
	}
	if v.RegisterProduct("Смазка ВМПАвто", "1002") {
		t.Error("repeat RegisterProduct() reported a change")
	}
	if got := v.Values(asset.PropSKU); !slices.Equal(got, []string{"1001", "1002"}) {
		t.Errorf("SKUs = %v", got)
	}
	if !v.RegisterProduct("", "1003") {
		t.Error("new SKU without name should still register")
	}
	if got := v.Values(asset.PropProductName); !slices.Equal(got, []string{"Смазка ВМПАвто"}) {
		t.Errorf("names = %v", got)
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	v := Defaults()
	s := v.Snapshot()
	s.Values[asset.PropCategory][0] = "changed"
	s.Subcategories["POS"] = nil

	if v.Values(asset.PropCategory)[0] != "POS" {
		t.Error("snapshot values alias the vocabulary")
	}
	if !v.HasSubcategories("POS") {
		t.Error("snapshot subcategories alias the vocabulary")
	}

	w := FromSnapshot(Snapshot{Values: map[string][]string{"Цвет": {"Красный"}}})
	if w.Values("Цвет") != nil {
		t.Error("FromSnapshot kept an unknown key")
	}
	if got := w.Values(asset.PropCategory); got == nil {
		t.Error("FromSnapshot did not add missing keys")
	}
}

func TestIsKnown(t *testing.T) {
	for _, k := range append(slices.Clone(Keys), asset.PropSubcategory) {
		if !IsKnown(k) {
			t.Errorf("IsKnown(%q) = false", k)
		}
	}
	if IsKnown(asset.PropFolder) {
		t.Error("folder is not a vocabulary key")
	}
}
