// Package language resolves ISO language and region codes to the
// languages used when reconciling alternative titles and translations.
package language
