package render

import (
	"fmt"
	"time"
)

// Supported locales.
const (
	LocaleID = "id"
	LocaleEN = "en"
)

type language struct {
	code        string
	placeholder string
	labels      map[string]string
	form        FormLabels
	formatDate  func(time.Time) string
}

// FormLabels are the localized strings of the HTML composition form.
type FormLabels struct {
	Compose       string
	Save          string
	Update        string
	Cancel        string
	ConfirmDelete string
	Summary       string
}

var languages = map[string]language{
	LocaleID: {
		code:        LocaleID,
		placeholder: "Tidak ada catatan yang cocok.",
		labels: map[string]string{
			ActionEdit:      "Edit",
			ActionDelete:    "Hapus",
			ActionSummarize: "Ringkas dengan AI",
		},
		form: FormLabels{
			Compose:       "Tulis catatan...",
			Save:          "Simpan Catatan",
			Update:        "Perbarui Catatan",
			Cancel:        "Batal",
			ConfirmDelete: "Yakin ingin menghapus catatan ini?",
			Summary:       "Ringkasan AI",
		},
		formatDate: formatIndonesian,
	},
	LocaleEN: {
		code:        LocaleEN,
		placeholder: "No matching notes.",
		labels: map[string]string{
			ActionEdit:      "Edit",
			ActionDelete:    "Delete",
			ActionSummarize: "Summarize with AI",
		},
		form: FormLabels{
			Compose:       "Write a note...",
			Save:          "Save Note",
			Update:        "Update Note",
			Cancel:        "Cancel",
			ConfirmDelete: "Delete this note?",
			Summary:       "AI summary",
		},
		formatDate: func(t time.Time) string {
			return t.Format("Monday, January 2, 2006 at 15:04")
		},
	},
}

func lookup(locale string) language {
	if l, ok := languages[locale]; ok {
		return l
	}
	return languages[LocaleID]
}

var (
	idWeekdays = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
	idMonths   = [...]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember"}
)

// formatIndonesian matches the id-ID long date with two-digit hour and minute.
func formatIndonesian(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d pukul %02d.%02d",
		idWeekdays[t.Weekday()], t.Day(), idMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
