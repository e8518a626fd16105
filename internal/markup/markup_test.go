package markup

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestLiteral_RoundTripsThroughRenderer(t *testing.T) {
	cases := []string{
		"Firebug 1.9",
		"<code>not a tag</code>",
		"tricky ]]> name",
		"",
		"]]>]]>",
	}

	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			got := Plain().Render(Literal(input))
			if got != input {
				t.Fatalf("Render(Literal(%q)) = %q, want %q", input, got, input)
			}
		})
	}
}

func TestLiteral_AnyString(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		if got := Plain().Render(Literal(s)); got != s {
			t.Fatalf("Render(Literal(%q)) = %q", s, got)
		}
	})
}

func TestRender_Code(t *testing.T) {
	msg := "Perhaps you meant " + Code("addon list extension") + "."
	want := "Perhaps you meant addon list extension."
	if got := Plain().Render(msg); got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRender_OrderedList(t *testing.T) {
	msg := "Installed:" + OrderedList(
		Item(Literal("Alpha 1.0")),
		Item(Literal("Zeta 2.0")),
		StruckItem(Literal("Beta 0.1")),
	) + "Done."

	want := "Installed:\n   1. Alpha 1.0\n   2. Zeta 2.0\n   3. Beta 0.1\nDone."
	if got := Plain().Render(msg); got != want {
		t.Fatalf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestRender_EmptyList(t *testing.T) {
	got := Plain().Render("Heading:" + OrderedList())
	if got != "Heading:\n" {
		t.Fatalf("Render() = %q, want %q", got, "Heading:\n")
	}
}

func TestRender_UnknownTagsKept(t *testing.T) {
	msg := "a <b>bold</b> claim"
	if got := Plain().Render(msg); got != msg {
		t.Fatalf("Render() = %q, want %q", got, msg)
	}
}

func TestRender_UnterminatedLiteral(t *testing.T) {
	got := Plain().Render("x" + literalOpen + "open")
	if got != "xopen" {
		t.Fatalf("Render() = %q, want %q", got, "xopen")
	}
}

func TestRender_StyledKeepsText(t *testing.T) {
	msg := OrderedList(StruckItem(Literal("Beta 0.1"))) + Code("addon install x")
	got := NewRendererForTest().Render(msg)
	if !strings.Contains(got, "Beta 0.1") {
		t.Fatalf("styled render lost list text: %q", got)
	}
	if !strings.Contains(got, "addon install x") {
		t.Fatalf("styled render lost code text: %q", got)
	}
}
