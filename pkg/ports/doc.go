/*
Package ports defines the interfaces (ports) between the Vitrine core and
the outside world, following Hexagonal Architecture principles.

Signal sources abstract the browser observer APIs (scroll, pointer, resize,
intersection, mutation, media queries) so trigger logic such as
normalization, throttling and debouncing stays platform-independent and
testable against fakes. Sinks abstract the write side: CSS variables and class toggles the
renderer applies to elements. SnapshotStore and DistributedLocker cover
preview-session persistence.

The package also ships contract test suites (e.g. RunSnapshotStoreContract)
that every adapter implementation must pass.
*/
package ports
