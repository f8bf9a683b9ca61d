/*
Package cash defines a simple token ledger. Every account is identified by
an address and holds a single fungible token balance.

Other extensions can use the Controller interface to move or mint tokens
without knowing the storage details.
*/
package cash
