// Package domain contains the core types of the application: the tagged
// input union fed to the content normalizer, and the flashcard and quiz
// record types produced by the generation adapter, together with their
// validation rules and count-clamping policy.
package domain
