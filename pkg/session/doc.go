/*
Package session manages live graph views.

Every view owns a reveal.Sequencer, an event loop and a Feed. Intents coming
from any goroutine are serialized onto the view's loop, and so are the timer
callbacks of its reveal plans, so a Sequencer never sees concurrent calls.
The Feed records what the surface shows and fans updates out to remote
subscribers.
*/
package session
