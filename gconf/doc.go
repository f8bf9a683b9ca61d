/*

Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps its configuration in a single, serialized object stored
under a well known key. The configuration is initialized from the genesis file
and can later be updated by an extension specific message handler, if the
extension provides one.

*/
package gconf
