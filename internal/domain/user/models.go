// user holds the identifier type for the owner of Deposits. The id itself is
// opaque to us; authentication is handled by the hosting shell, which hands us
// pre-authenticated ids.
package user

type Id string
