// Package reducers provides terminal reducers for transducer pipelines.
//
// Every constructor returns a fresh reducer whose Init builds a new seed,
// so one reducer value may drive any number of runs. Reducers that can
// merge partial results (Appending, Conjoining, Adding, Summing,
// Multiplying, Extending) also implement transducer.Combiner and can be
// used with the parallel driver.
package reducers
