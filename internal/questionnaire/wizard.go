// internal/questionnaire/wizard.go
package questionnaire

// Wizard walks the derived sequence one step at a time, normalizing and
// validating answers as they arrive. The sequence is re-derived on every
// access, so gate and count changes take effect immediately.
type Wizard struct {
	answers AnswerSet
	step    int
}

func NewWizard() *Wizard {
	return &Wizard{answers: make(AnswerSet)}
}

// NewWizardFrom resumes from a previously saved answer set.
func NewWizardFrom(answers AnswerSet) *Wizard {
	if answers == nil {
		answers = make(AnswerSet)
	}
	return &Wizard{answers: answers}
}

// Current returns the question at the cursor, or false when the sequence is
// exhausted.
func (w *Wizard) Current() (Question, bool) {
	seq := BuildSequence(w.answers)
	if w.step >= len(seq) {
		return Question{}, false
	}
	return seq[w.step], true
}

// Answer records a value for the current question and advances on success.
// Phone input is digit-filtered and capped; currency input is re-grouped.
// A validation failure keeps the normalized value in place so the caller can
// re-prompt without losing state.
func (w *Wizard) Answer(value string) error {
	q, ok := w.Current()
	if !ok {
		return nil
	}

	switch {
	case q.Key == "phone":
		value = FilterPhone(value)
	case IsCurrencyKey(q.Key):
		value = FormatCurrency(value)
	}
	w.answers.Set(q.Key, value)

	if err := ValidateStep(q, w.answers); err != nil {
		return err
	}

	w.step++
	return nil
}

// SetInline records an auxiliary value that is captured on another question's
// step, such as the savings balance on the savings gate.
func (w *Wizard) SetInline(key, value string) {
	if IsCurrencyKey(key) {
		value = FormatCurrency(value)
	}
	w.answers.Set(key, value)
}

// Back moves the cursor one step earlier.
func (w *Wizard) Back() {
	if w.step > 0 {
		w.step--
	}
}

// Done reports whether every question in the current sequence is behind the
// cursor.
func (w *Wizard) Done() bool {
	return w.step >= len(BuildSequence(w.answers))
}

// Progress returns the cursor position and the current sequence length.
func (w *Wizard) Progress() (int, int) {
	return w.step, len(BuildSequence(w.answers))
}

// Answers exposes the underlying answer set.
func (w *Wizard) Answers() AnswerSet {
	return w.answers
}
