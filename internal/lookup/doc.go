// Package lookup turns raw user input into a Request. Input containing a
// slash-delimited marker such as "I went for a /run/ today" is resolved in
// context of the surrounding sentence; anything else is looked up as is.
package lookup
