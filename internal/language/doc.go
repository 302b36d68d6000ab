// Package language normalizes the language codes carried by catalog records.
//
// Source exports mix ISO 639-1 and ISO 639-3 codes with inconsistent case.
// Everything is compared in its ISO 639-3 form so "th", "THA" and "tha"
// select the same records.
package language
