// Package session owns the client's authentication state.
//
// A Controller starts in the bootstrapping state and, exactly once, tries to
// restore the session from the token left in the credential store. After
// that it moves between authenticated and unauthenticated through Login,
// Logout and Unauthenticated events raised by the transport on the bus.
//
//	Bootstrapping ──restore──▶ Authenticated | Unauthenticated
//	Unauthenticated ──Login──▶ Authenticated
//	Authenticated ──Logout / Unauthenticated event──▶ Unauthenticated
//
// Every mutation happens under one mutex and bumps a generation counter
// where it supersedes in-flight work, so a login or restore that resolves
// after a Logout cannot bring the session back.
//
// Consumers read the state through Snapshot or Subscribe and never see an
// error: Login reports a Result and the reason is kept in State.Error.
package session
