// Package claims assembles the unsigned claim payloads for the four authorization intents:
// register, earn, spend and pay_to_user.
//
// Builders validate every required input before constructing anything, so a caller never receives a
// partially filled payload. Earn and spend share a shape but differ in which side carries the
// narrative: earn uses "recipient", spend uses "sender". The signing service validates against that
// key, so it must not be swapped.
package claims
