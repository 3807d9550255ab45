// Package lesson is the canonical lesson catalog for the 2026 YKS exam.
package lesson

import (
	"strings"

	"github.com/verte-zerg/yks/internal/model"
)

// Section is the exam stage a lesson belongs to.
type Section string

// Sections.
const (
	SectionTYT Section = "TYT"
	SectionAYT Section = "AYT"
)

// DefaultMaxQuestions applies to lesson names the catalog does not know.
const DefaultMaxQuestions = 40

// Lesson describes one subject.
type Lesson struct {
	Name         string
	Section      Section
	MaxQuestions int
	Synonyms     []string
	Topics       []string
}

// Group is a labeled list of lesson names.
type Group struct {
	Label   string
	Lessons []string
}

var catalog = []Lesson{
	{Name: "Türkçe", Section: SectionTYT, MaxQuestions: 40, Topics: []string{
		"Sözcükte Anlam", "Cümlede Anlam", "Paragraf", "Ses Bilgisi", "Yazım Kuralları",
		"Noktalama İşaretleri", "Dil Bilgisi", "Anlatım Bozuklukları",
	}},
	{Name: "Matematik", Section: SectionTYT, MaxQuestions: 40, Synonyms: []string{"TYT Matematik", "Mat"}, Topics: []string{
		"Temel Kavramlar", "Sayı Basamakları", "Bölme ve Bölünebilme", "OBEB-OKEK", "Rasyonel Sayılar",
		"Denklemler", "Oran-Orantı", "Problemler", "Fonksiyonlar", "Olasılık",
	}},
	{Name: "Geometri", Section: SectionTYT, MaxQuestions: 40, Synonyms: []string{"Geo"}, Topics: []string{
		"Açılar", "Üçgenler", "Dörtgenler", "Çember ve Daire", "Katı Cisimler", "Analitik Geometri",
	}},
	{Name: "Fizik", Section: SectionTYT, MaxQuestions: 7, Synonyms: []string{"TYT Fizik"}, Topics: []string{
		"Kuvvet ve Hareket", "Newton Kanunları", "İş-Güç-Enerji", "Basınç", "Elektrik", "Optik",
	}},
	{Name: "Kimya", Section: SectionTYT, MaxQuestions: 7, Synonyms: []string{"TYT Kimya"}, Topics: []string{
		"Atom ve Periyodik Sistem", "Maddenin Halleri", "Kimyasal Tepkimeler", "Mol Kavramı", "Asit-Baz",
	}},
	{Name: "Biyoloji", Section: SectionTYT, MaxQuestions: 6, Synonyms: []string{"TYT Biyoloji"}, Topics: []string{
		"Hücre", "Canlıların Sınıflandırılması", "Kalıtım", "Ekosistem",
	}},
	{Name: "Tarih", Section: SectionTYT, MaxQuestions: 5, Synonyms: []string{"TYT Tarih"}, Topics: []string{
		"İlk Türk Devletleri", "Osmanlı Tarihi", "Kurtuluş Savaşı", "Atatürk İlkeleri",
	}},
	{Name: "Coğrafya", Section: SectionTYT, MaxQuestions: 5, Synonyms: []string{"TYT Coğrafya"}, Topics: []string{
		"Harita Bilgisi", "İklim", "Nüfus", "Türkiye'nin Yer Şekilleri",
	}},
	{Name: "Felsefe", Section: SectionTYT, MaxQuestions: 5, Synonyms: []string{"TYT Felsefe"}, Topics: []string{
		"Felsefeye Giriş", "Bilgi Felsefesi", "Ahlak Felsefesi", "Sanat Felsefesi",
	}},
	{Name: "Din Kültürü", Section: SectionTYT, MaxQuestions: 5, Synonyms: []string{"Din", "DKAB", "Din Kültürü ve Ahlak Bilgisi"}, Topics: []string{
		"İnanç", "İbadet", "Ahlak", "Hz. Muhammed'in Hayatı",
	}},
	{Name: "AYT Matematik", Section: SectionAYT, MaxQuestions: 40, Topics: []string{
		"Polinomlar", "Logaritma", "Diziler", "Limit", "Türev", "İntegral", "Trigonometri",
	}},
	{Name: "AYT Fizik", Section: SectionAYT, MaxQuestions: 14, Topics: []string{
		"Vektörler", "Çembersel Hareket", "Elektrik ve Manyetizma", "Dalgalar", "Modern Fizik",
	}},
	{Name: "AYT Kimya", Section: SectionAYT, MaxQuestions: 13, Topics: []string{
		"Kimyasal Kinetik", "Kimyasal Denge", "Elektrokimya", "Organik Kimya",
	}},
	{Name: "AYT Biyoloji", Section: SectionAYT, MaxQuestions: 13, Topics: []string{
		"Sinir Sistemi", "Genetik", "Bitki Biyolojisi", "Ekoloji",
	}},
	{Name: "AYT Edebiyat", Section: SectionAYT, MaxQuestions: 24, Synonyms: []string{"Edebiyat", "Türk Dili ve Edebiyatı"}, Topics: []string{
		"Şiir Bilgisi", "Divan Edebiyatı", "Tanzimat Edebiyatı", "Cumhuriyet Dönemi",
	}},
	{Name: "AYT Tarih-1", Section: SectionAYT, MaxQuestions: 4, Topics: []string{
		"İlk ve Orta Çağ Türk Tarihi", "Osmanlı Kuruluş",
	}},
	{Name: "AYT Tarih-2", Section: SectionAYT, MaxQuestions: 6, Topics: []string{
		"Yakınçağ", "İnkılap Tarihi",
	}},
	{Name: "AYT Coğrafya-1", Section: SectionAYT, MaxQuestions: 3, Topics: []string{
		"Fiziki Coğrafya", "Beşeri Coğrafya",
	}},
	{Name: "AYT Coğrafya-2", Section: SectionAYT, MaxQuestions: 3, Topics: []string{
		"Bölgeler", "Türkiye Ekonomisi",
	}},
	{Name: "AYT Felsefe", Section: SectionAYT, MaxQuestions: 4, Topics: []string{
		"Felsefe Tarihi", "Bilim Felsefesi",
	}},
	{Name: "AYT Din Kültürü", Section: SectionAYT, MaxQuestions: 3, Synonyms: []string{"AYT DKAB", "AYT Din"}, Topics: []string{
		"Dünya Dinleri", "İslam Düşüncesi",
	}},
	{Name: "AYT Psikoloji", Section: SectionAYT, MaxQuestions: 3, Topics: []string{
		"Öğrenme", "Bellek",
	}},
	{Name: "AYT Sosyoloji", Section: SectionAYT, MaxQuestions: 3, Topics: []string{
		"Toplumsal Yapı", "Kültür",
	}},
	{Name: "AYT Mantık", Section: SectionAYT, MaxQuestions: 2, Topics: []string{
		"Önermeler", "Çıkarım",
	}},
	// Older records use the combined social science tests. They resolve but are never offered.
	{Name: "AYT Tarih", Section: SectionAYT, MaxQuestions: 10, Topics: []string{
		"İlk ve Orta Çağ Türk Tarihi", "Osmanlı Kuruluş", "Yakınçağ", "İnkılap Tarihi",
	}},
	{Name: "AYT Coğrafya", Section: SectionAYT, MaxQuestions: 6, Topics: []string{
		"Fiziki Coğrafya", "Beşeri Coğrafya", "Bölgeler", "Türkiye Ekonomisi",
	}},
}

var (
	byName  = map[string]int{}
	byAlias = map[string]int{}
)

func init() {
	for i, l := range catalog {
		byName[l.Name] = i
		byAlias[foldKey(l.Name)] = i
		for _, syn := range l.Synonyms {
			byAlias[foldKey(syn)] = i
		}
	}
}

// All returns every lesson in catalog order.
func All() []Lesson {
	out := make([]Lesson, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for a canonical name or synonym.
func Lookup(name string) (Lesson, bool) {
	if i, ok := byName[name]; ok {
		return catalog[i], true
	}
	if i, ok := byAlias[foldKey(name)]; ok {
		return catalog[i], true
	}
	return Lesson{}, false
}

// Canonical maps a lesson name or synonym to its canonical name.
func Canonical(name string) (string, bool) {
	l, ok := Lookup(name)
	if !ok {
		return strings.TrimSpace(name), false
	}
	return l.Name, true
}

// MaxQuestions returns the number of questions the lesson has on the exam.
func MaxQuestions(name string) int {
	if l, ok := Lookup(name); ok {
		return l.MaxQuestions
	}
	return DefaultMaxQuestions
}

// IsAYT reports whether a lesson name belongs to the AYT section.
func IsAYT(name string) bool {
	return strings.HasPrefix(strings.TrimSpace(name), "AYT")
}

// Topics returns the topic pool for a lesson.
func Topics(name string) []string {
	l, ok := Lookup(name)
	if !ok {
		return nil
	}
	out := make([]string, len(l.Topics))
	copy(out, l.Topics)
	return out
}

var tytGroups = []Group{
	{Label: "TYT - Türkçe & Sosyal", Lessons: []string{"Türkçe", "Tarih", "Coğrafya", "Felsefe", "Din Kültürü"}},
	{Label: "TYT - Matematik & Fen", Lessons: []string{"Matematik", "Geometri", "Fizik", "Kimya", "Biyoloji"}},
}

var fieldGroups = map[model.StudyField][]Group{
	model.FieldQuantitative: {
		{Label: "AYT - Sayısal Testi", Lessons: []string{"AYT Matematik", "AYT Fizik", "AYT Kimya", "AYT Biyoloji"}},
	},
	model.FieldMixed: {
		{Label: "AYT - Eşit Ağırlık", Lessons: []string{"AYT Matematik", "AYT Edebiyat", "AYT Tarih-1", "AYT Coğrafya-1"}},
	},
	model.FieldVerbal: {
		{Label: "AYT - Sözel Temeller", Lessons: []string{"AYT Edebiyat", "AYT Tarih-1", "AYT Coğrafya-1"}},
		{Label: "AYT - Sosyal Bilimler-2", Lessons: []string{
			"AYT Tarih-2", "AYT Coğrafya-2", "AYT Felsefe", "AYT Din Kültürü", "AYT Psikoloji", "AYT Sosyoloji", "AYT Mantık",
		}},
	},
}

var fieldOrder = []model.StudyField{model.FieldQuantitative, model.FieldMixed, model.FieldVerbal}

// GroupsForField returns the TYT groups plus the AYT groups of the field.
// An empty field yields every AYT group.
func GroupsForField(field model.StudyField) []Group {
	groups := append([]Group(nil), tytGroups...)
	if field.Valid() {
		return append(groups, fieldGroups[field]...)
	}
	for _, f := range fieldOrder {
		groups = append(groups, fieldGroups[f]...)
	}
	return groups
}

// OptionsForField returns the distinct lesson names for a field in group order.
func OptionsForField(field model.StudyField) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, g := range GroupsForField(field) {
		for _, name := range g.Lessons {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// DefaultForField returns the first lesson offered for a field.
func DefaultForField(field model.StudyField) string {
	options := OptionsForField(field)
	if len(options) == 0 {
		return "Matematik"
	}
	return options[0]
}

func foldKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
