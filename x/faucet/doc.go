/*
Package faucet implements a rate limited token faucet.

Anyone can ask the faucet for tokens. Payouts are throttled per account by
a configurable time window and per network address by a quota of distinct
accounts. An admin maintains the payout amounts and funds the pool. All
tokens move through the cash controller, the faucet itself only decides
eligibility and keeps the claim bookkeeping.
*/
package faucet
