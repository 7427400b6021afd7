// Package resolverequest implements the resolution of a pending administrative request.
//
// A request is resolved exactly once, to approved or rejected. A second resolution fails and
// leaves the first decision in place. The consequences of an approval (enrolling an applicant,
// acquiring a title) are not decided here; the engine dispatches the RequestResolved event to
// approval hooks.
package resolverequest
