package i18n

import "testing"

func TestResolveLocale(t *testing.T) {
	cases := map[string]string{
		"":                   LocalePtBR,
		"pt-BR,pt;q=0.9":     LocalePtBR,
		"en-GB,en;q=0.8":     LocaleEnUS,
		"fr-FR, en-US;q=0.5": LocaleEnUS,
		"de-DE":              LocalePtBR,
		"pt_br":              LocalePtBR,
	}
	for input, want := range cases {
		if got := ResolveLocale(input); got != want {
			t.Fatalf("ResolveLocale(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestTFallsBack(t *testing.T) {
	if got := T(LocaleEnUS, "error.cart_empty"); got != "Your cart is empty" {
		t.Fatalf("unexpected en message: %s", got)
	}
	if got := T("xx", "error.cart_empty"); got != "Seu carrinho está vazio" {
		t.Fatalf("unexpected fallback: %s", got)
	}
	if got := T(LocalePtBR, "missing.key"); got != "missing.key" {
		t.Fatalf("missing key should echo: %s", got)
	}
	if got := Sprintf(LocalePtBR, "mail.status_subject", "PC1"); got != "Atualização do pedido PC1" {
		t.Fatalf("unexpected sprintf: %s", got)
	}
}
