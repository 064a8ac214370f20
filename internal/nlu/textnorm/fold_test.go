package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "hamza above alef", in: "أريد", want: "اريد"},
		{name: "hamza below alef", in: "إلغاء", want: "الغاء"},
		{name: "harakat removed", in: "عَصِير", want: "عصير"},
		{name: "tanween removed", in: "شكراً", want: "شكرا"},
		{name: "tatweel removed", in: "بيـــتزا", want: "بيتزا"},
		{name: "latin lowercased", in: "Pizza CAFÉ", want: "pizza cafe"},
		{name: "plain text untouched", in: "دجاج مشوي", want: "دجاج مشوي"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestFold_Idempotent(t *testing.T) {
	for _, s := range []string{"أنا سارة", "مرحباً بكم", "قائمة الأسعار"} {
		once := Fold(s)
		assert.Equal(t, once, Fold(once))
	}
}

func TestContainsAny(t *testing.T) {
	folded := Fold("أهلاً، بدي أعرف قائمة الطعام")

	assert.True(t, ContainsAny(folded, []string{"قائمة"}))
	assert.True(t, ContainsAny(folded, []string{"غير موجود", "أهلا"}))
	assert.False(t, ContainsAny(folded, []string{"شكرا"}))
	assert.False(t, ContainsAny(folded, []string{""}))
	assert.False(t, ContainsAny(folded, nil))
}

func TestFoldAll(t *testing.T) {
	assert.Equal(t, []string{"اريد", "بيتزا"}, FoldAll([]string{"أريد", "بيتزا"}))
	assert.Empty(t, FoldAll(nil))
}
