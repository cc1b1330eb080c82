// Package apperr définit la taxonomie d'erreurs du domaine.
// ValidationError → 400, NotFoundError → 404 ; tout le reste → 500 opaque.
package apperr

import "errors"

// ValidationError signale une entrée malformée ou violant une contrainte
// (matricule dupliqué, référence pendante, champ requis manquant).
type ValidationError struct {
	Message string
	Field   string // champ fautif, optionnel
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation construit une ValidationError sans champ associé.
func Validation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ValidationField construit une ValidationError en désignant le champ fautif.
func ValidationField(message, field string) *ValidationError {
	return &ValidationError{Message: message, Field: field}
}

// NotFoundError signale qu'un identifiant référencé ne résout pas.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NotFound(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// AsValidation extrait une ValidationError de la chaîne d'erreurs.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsNotFound extrait une NotFoundError de la chaîne d'erreurs.
func AsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}
