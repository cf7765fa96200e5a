// Package marker toggles short marker tokens (such as #key, #action or
// #question) at the front of markdown lines.
//
// A token is present on a line when the text token+" " occurs anywhere in it.
// Toggling a line that carries the token removes every occurrence; toggling a
// line without it inserts exactly one occurrence right after the line's
// structural prefix:
//
//	buy milk          ->  #action buy milk
//	  buy milk        ->    #action buy milk
//	- buy milk        ->  - #action buy milk
//	- [ ] buy milk    ->  - [ ] #action buy milk
//	1. buy milk       ->  1. #action buy milk
//
// Empty lines are never changed. The package does no I/O: hosts hand lines in
// through the Buffer interface and write the results back themselves.
package marker
